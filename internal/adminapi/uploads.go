package adminapi

import (
	"net/http"
	"strings"

	"github.com/cafeteca/cafeteca-server/internal/storage"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func registerUploadRoutes() {
	webserver.ApiPOST("/uploads/:kind", uploadImage)
	webserver.ApiDELETE("/uploads/:kind", deleteUpload)
}

// uploadImage stores one image in the bucket matching :kind
// (category, home or event) and returns its public URL.
func uploadImage(c echo.Context) error {
	bucket, found := storage.BucketForKind(c.Param("kind"))
	if !found {
		return fail(c, http.StatusBadRequest, "INVALID_KIND", "Tip de imagine necunoscut")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Lipseste fisierul imagine")
	}

	contentType := fh.Header.Get("Content-Type")
	if err := storage.ValidateImage(contentType, fh.Size); err != nil {
		switch err {
		case storage.ErrNotImage:
			return fail(c, http.StatusBadRequest, "VALIDATION", "Fisierul trebuie sa fie o imagine")
		case storage.ErrTooLarge:
			return fail(c, http.StatusBadRequest, "VALIDATION", "Imaginea nu poate depasi 5MB")
		default:
			return fail(c, http.StatusBadRequest, "VALIDATION", "Imagine invalida")
		}
	}

	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Eroare la incarcarea imaginii")
	}
	defer src.Close()

	owner := strings.TrimSpace(c.QueryParam("owner"))
	name := storage.ObjectName(owner, fh.Filename)
	url, err := appCtx.Storage().Put(bucket, name, src)
	if err != nil {
		zap.L().Error("image upload failed",
			zap.String("bucket", bucket.Name), zap.String("name", name), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Eroare la incarcarea imaginii")
	}

	publishChange(c, "image.upload", bucket.Name+"/"+name)
	return created(c, map[string]string{"url": url, "name": name})
}

// deleteUpload removes the object referenced by ?url=. Failures are
// swallowed so editors can always detach a broken image reference.
func deleteUpload(c echo.Context) error {
	bucket, found := storage.BucketForKind(c.Param("kind"))
	if !found {
		return fail(c, http.StatusBadRequest, "INVALID_KIND", "Tip de imagine necunoscut")
	}
	url := strings.TrimSpace(c.QueryParam("url"))
	if url == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Lipseste adresa imaginii")
	}
	deleted := storage.DeleteByURL(appCtx.Storage(), bucket, url)
	publishChange(c, "image.delete", bucket.Name+"/"+storage.NameFromURL(url))
	return ok(c, map[string]interface{}{"deleted": deleted})
}

// Best-effort cleanup helpers used by the entity editors when an image is
// replaced or its owner row goes away.

func storageDeleteCategoryImage(url string) {
	storage.DeleteByURL(appCtx.Storage(), storage.CategoryImages, url)
}

func storageDeleteEventImage(url string) {
	storage.DeleteByURL(appCtx.Storage(), storage.EventImages, url)
}

func storageDeleteHomeImage(url string) {
	storage.DeleteByURL(appCtx.Storage(), storage.HomeImages, url)
}
