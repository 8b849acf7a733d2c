package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/cafeteca/cafeteca-server/pkg/common"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerHomeSectionRoutes() {
	webserver.ApiGET("/home-sections", listHomeSections)
	webserver.ApiGET("/home-sections/:id", getHomeSection)
	webserver.ApiPOST("/home-sections", createHomeSection)
	webserver.ApiPUT("/home-sections/:id", updateHomeSection)
	webserver.ApiDELETE("/home-sections/:id", deleteHomeSection)
	webserver.ApiPOST("/home-sections/reorder", reorderHomeSections)
	webserver.ApiPOST("/home-sections/:id/move", moveHomeSection)
}

type homeSectionPayload struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url"`
	LinkURL     string `json:"link_url" form:"link_url"`
	LinkText    string `json:"link_text" form:"link_text"`
	CategoryID  *int64 `json:"category_id,string" form:"category_id"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
}

type reorderPayload struct {
	IDs []int64 `json:"ids"`
}

type movePayload struct {
	Direction string `json:"direction" form:"direction"`
}

func validateHomeSectionPayload(payload *homeSectionPayload) string {
	payload.Title = strings.TrimSpace(payload.Title)
	payload.Description = strings.TrimSpace(payload.Description)
	if payload.Title == "" || payload.Description == "" {
		return "Titlul si descrierea sunt obligatorii"
	}
	return ""
}

// rankSectionIDs computes the new contiguous display order for a full
// permutation request. Current is the present order (by display_order),
// requested is the client's id list. Unknown ids are dropped and rows the
// client omitted keep their relative order at the end, so the result is
// always a 0..n-1 ranking of exactly the current rows.
func rankSectionIDs(current, requested []int64) map[int64]int {
	known := make(map[int64]bool, len(current))
	for _, id := range current {
		known[id] = true
	}
	order := make(map[int64]int, len(current))
	next := 0
	for _, id := range requested {
		if known[id] {
			if _, seen := order[id]; !seen {
				order[id] = next
				next++
			}
		}
	}
	for _, id := range current {
		if _, seen := order[id]; !seen {
			order[id] = next
			next++
		}
	}
	return order
}

func loadSectionsOrdered(tx *gorm.DB) ([]domain.HomeSection, error) {
	var rows []domain.HomeSection
	err := tx.Order("display_order ASC, id ASC").Find(&rows).Error
	return rows, err
}

// renumberSections rewrites display_order to 0..n-1 following the current
// ordering, repairing any gaps left by deletions.
func renumberSections(tx *gorm.DB) error {
	rows, err := loadSectionsOrdered(tx)
	if err != nil {
		return err
	}
	for i := range rows {
		if rows[i].DisplayOrder == i {
			continue
		}
		if err := tx.Model(&domain.HomeSection{}).Where("id = ?", rows[i].ID).
			Updates(map[string]interface{}{"display_order": i, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
	}
	return nil
}

func listHomeSections(c echo.Context) error {
	rows, err := loadSectionsOrdered(GetDB(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea sectiunilor")
	}
	return ok(c, rows)
}

func getHomeSection(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var sec domain.HomeSection
	if err := GetDB(c).Where("id = ?", id).First(&sec).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Sectiunea nu a fost gasita")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea sectiunii")
	}
	return ok(c, sec)
}

func createHomeSection(c echo.Context) error {
	var payload homeSectionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if msg := validateHomeSectionPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION", msg)
	}

	now := time.Now()
	sec := domain.HomeSection{
		ID:          common.UUIDint64(),
		Title:       payload.Title,
		Description: payload.Description,
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		LinkURL:     payload.LinkURL,
		LinkText:    payload.LinkText,
		CategoryID:  payload.CategoryID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if payload.IsActive != nil {
		sec.IsActive = *payload.IsActive
	}

	// new sections go to the end of the list
	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.HomeSection{}).Count(&count).Error; err != nil {
			return err
		}
		sec.DisplayOrder = int(count)
		return tx.Create(&sec).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la salvarea sectiunii")
	}
	publishChange(c, "home_section.create", sec.Title)
	return created(c, sec)
}

func updateHomeSection(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var sec domain.HomeSection
	if err := GetDB(c).Where("id = ?", id).First(&sec).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Sectiunea nu a fost gasita")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea sectiunii")
	}

	var payload homeSectionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if msg := validateHomeSectionPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION", msg)
	}

	newImage := strings.TrimSpace(payload.ImageURL)
	if sec.ImageURL != "" && sec.ImageURL != newImage {
		storageDeleteHomeImage(sec.ImageURL)
	}

	sec.Title = payload.Title
	sec.Description = payload.Description
	sec.ImageURL = newImage
	sec.LinkURL = payload.LinkURL
	sec.LinkText = payload.LinkText
	sec.CategoryID = payload.CategoryID
	if payload.IsActive != nil {
		sec.IsActive = *payload.IsActive
	}
	sec.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&sec).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la salvarea sectiunii")
	}
	publishChange(c, "home_section.update", sec.Title)
	return ok(c, sec)
}

func deleteHomeSection(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var sec domain.HomeSection
	if err := GetDB(c).Where("id = ?", id).First(&sec).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Sectiunea nu a fost gasita")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea sectiunii")
	}

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&domain.HomeSection{}).Error; err != nil {
			return err
		}
		return renumberSections(tx)
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea sectiunii")
	}
	if sec.ImageURL != "" {
		storageDeleteHomeImage(sec.ImageURL)
	}
	publishChange(c, "home_section.delete", sec.Title)
	return ok(c, map[string]interface{}{"id": id})
}

// reorderHomeSections applies a full permutation sent as an id list. All
// writes happen in one transaction so readers never observe a partial
// ordering.
func reorderHomeSections(c echo.Context) error {
	var payload reorderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if len(payload.IDs) == 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION", "Lista de sectiuni este goala")
	}

	var out []domain.HomeSection
	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		rows, err := loadSectionsOrdered(tx)
		if err != nil {
			return err
		}
		current := make([]int64, len(rows))
		for i, r := range rows {
			current[i] = r.ID
		}
		order := rankSectionIDs(current, payload.IDs)
		for _, r := range rows {
			pos := order[r.ID]
			if r.DisplayOrder == pos {
				continue
			}
			if err := tx.Model(&domain.HomeSection{}).Where("id = ?", r.ID).
				Updates(map[string]interface{}{"display_order": pos, "updated_at": time.Now()}).Error; err != nil {
				return err
			}
		}
		out, err = loadSectionsOrdered(tx)
		return err
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la reordonarea sectiunilor")
	}
	publishChange(c, "home_section.reorder", "")
	return ok(c, out)
}

// moveHomeSection shifts one section a single step up or down by swapping
// display_order with its neighbour.
func moveHomeSection(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var payload movePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if payload.Direction != "up" && payload.Direction != "down" {
		return fail(c, http.StatusBadRequest, "VALIDATION", "Directia trebuie sa fie up sau down")
	}

	var out []domain.HomeSection
	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		rows, err := loadSectionsOrdered(tx)
		if err != nil {
			return err
		}
		idx := -1
		for i, r := range rows {
			if r.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return gorm.ErrRecordNotFound
		}
		other := idx - 1
		if payload.Direction == "down" {
			other = idx + 1
		}
		if other < 0 || other >= len(rows) {
			// already at the edge, nothing to do
			out = rows
			return nil
		}
		now := time.Now()
		if err := tx.Model(&domain.HomeSection{}).Where("id = ?", rows[idx].ID).
			Updates(map[string]interface{}{"display_order": other, "updated_at": now}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.HomeSection{}).Where("id = ?", rows[other].ID).
			Updates(map[string]interface{}{"display_order": idx, "updated_at": now}).Error; err != nil {
			return err
		}
		out, err = loadSectionsOrdered(tx)
		return err
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Sectiunea nu a fost gasita")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la mutarea sectiunii")
	}
	publishChange(c, "home_section.move", payload.Direction)
	return ok(c, out)
}
