package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/cafeteca/cafeteca-server/pkg/common"
	"github.com/labstack/echo/v4"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiGET("/categories/:id", getCategory)
	webserver.ApiPOST("/categories", createCategory)
	webserver.ApiPUT("/categories/:id", updateCategory)
	webserver.ApiDELETE("/categories/:id", deleteCategory)
	webserver.ApiPOST("/categories/:id/toggle", toggleCategory)
}

type categoryPayload struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
}

// sortCategories orders active categories first, then alphabetically using
// Romanian collation so diacritics sort naturally.
func sortCategories(rows []domain.Category) {
	cl := collate.New(language.Romanian, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].IsActive != rows[j].IsActive {
			return rows[i].IsActive
		}
		return cl.CompareString(rows[i].Name, rows[j].Name) < 0
	})
}

func listCategories(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))

	db := GetDB(c).Model(&domain.Category{})
	db = whereTextMatch(db, q, "name", "description")

	var rows []domain.Category
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea categoriilor")
	}
	sortCategories(rows)
	return ok(c, rows)
}

func getCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var cat domain.Category
	if err := GetDB(c).Where("id = ?", id).First(&cat).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Categoria nu a fost gasita")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea categoriei")
	}
	return ok(c, cat)
}

// categoryNameTaken checks the case-insensitive uniqueness invariant,
// optionally excluding one row (the one being updated).
func categoryNameTaken(c echo.Context, name string, excludeID int64) (bool, error) {
	db := GetDB(c).Model(&domain.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION", "Numele categoriei este obligatoriu")
	}

	taken, err := categoryNameTaken(c, payload.Name, 0)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la crearea categoriei")
	}
	if taken {
		return fail(c, http.StatusBadRequest, "CONFLICT", "Exista deja o categorie cu acest nume")
	}

	now := time.Now()
	cat := domain.Category{
		ID:          common.UUIDint64(),
		Name:        payload.Name,
		Description: payload.Description,
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if payload.IsActive != nil {
		cat.IsActive = *payload.IsActive
	}
	if err := GetDB(c).Create(&cat).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la crearea categoriei")
	}
	publishChange(c, "category.create", cat.Name)
	return created(c, cat)
}

func updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var cat domain.Category
	if err := GetDB(c).Where("id = ?", id).First(&cat).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Categoria nu a fost gasita")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea categoriei")
	}

	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if name := strings.TrimSpace(payload.Name); name != "" {
		taken, err := categoryNameTaken(c, name, id)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la actualizarea categoriei")
		}
		if taken {
			return fail(c, http.StatusBadRequest, "CONFLICT", "Exista deja o categorie cu acest nume")
		}
		updates["name"] = name
	}
	if payload.Description != "" {
		updates["description"] = payload.Description
	}
	if payload.ImageURL != "" {
		newURL := strings.TrimSpace(payload.ImageURL)
		if cat.ImageURL != "" && cat.ImageURL != newURL {
			// replaced image, clean up the old object
			storageDeleteCategoryImage(cat.ImageURL)
		}
		updates["image_url"] = newURL
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	if err := GetDB(c).Model(&cat).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la actualizarea categoriei")
	}
	GetDB(c).Where("id = ?", id).First(&cat)
	publishChange(c, "category.update", cat.Name)
	return ok(c, cat)
}

// deleteCategory soft-deletes: the row is kept with is_active=false so
// product references stay valid. Hard deletion is refused outright while
// products point at the category.
func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var cat domain.Category
	if err := GetDB(c).Where("id = ?", id).First(&cat).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Categoria nu a fost gasita")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea categoriei")
	}

	var productCount int64
	if err := GetDB(c).Model(&domain.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea categoriei")
	}
	if productCount > 0 {
		return fail(c, http.StatusBadRequest, "CONFLICT",
			"Nu puteti sterge o categorie care are produse asociate")
	}

	if err := GetDB(c).Model(&domain.Category{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea categoriei")
	}
	publishChange(c, "category.delete", cat.Name)
	return ok(c, map[string]interface{}{"message": "Categorie stearsa cu succes"})
}

// toggleCategory flips is_active and nothing else besides updated_at.
func toggleCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var cat domain.Category
	if err := GetDB(c).Where("id = ?", id).First(&cat).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Categoria nu a fost gasita")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la actualizarea categoriei")
	}

	if err := GetDB(c).Model(&domain.Category{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": !cat.IsActive, "updated_at": time.Now()}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la actualizarea categoriei")
	}
	GetDB(c).Where("id = ?", id).First(&cat)
	publishChange(c, "category.toggle", fmt.Sprintf("%s=%t", cat.Name, cat.IsActive))
	return ok(c, cat)
}
