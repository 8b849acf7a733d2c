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

// NoCategoryLabel is the display fallback for products without a category.
const NoCategoryLabel = "Fara categorie"

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

type productPayload struct {
	Name         string  `json:"name" form:"name"`
	Price        float64 `json:"price" form:"price"`
	Category     string  `json:"category" form:"category"`
	Description  string  `json:"description" form:"description"`
	ImageURL     string  `json:"image_url" form:"image_url"`
	IsAvailable  *bool   `json:"is_available" form:"is_available"`
	IsVegetarian bool    `json:"is_vegetarian" form:"is_vegetarian"`
	IsVegan      bool    `json:"is_vegan" form:"is_vegan"`
	IsGlutenFree bool    `json:"is_gluten_free" form:"is_gluten_free"`
	IsDairyFree  bool    `json:"is_dairy_free" form:"is_dairy_free"`
	IsSpicy      bool    `json:"is_spicy" form:"is_spicy"`
	IsNew        bool    `json:"is_new" form:"is_new"`
	IsPopular    bool    `json:"is_popular" form:"is_popular"`
}

// productRow is the list representation with the joined category name.
type productRow struct {
	domain.Product
	Category string `json:"category"`
}

func categoryNames(c echo.Context) (map[int64]string, error) {
	var cats []domain.Category
	if err := GetDB(c).Find(&cats).Error; err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(cats))
	for _, cat := range cats {
		names[cat.ID] = cat.Name
	}
	return names, nil
}

func toProductRow(p domain.Product, names map[int64]string) productRow {
	row := productRow{Product: p, Category: NoCategoryLabel}
	if p.CategoryID != nil {
		if name, ok := names[*p.CategoryID]; ok {
			row.Category = name
		}
	}
	return row
}

func listProducts(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))

	db := GetDB(c).Model(&domain.Product{})
	db = whereTextMatch(db, q, "name", "description")

	var rows []domain.Product
	if err := db.Order("name ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea produselor")
	}

	names, err := categoryNames(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea produselor")
	}

	out := make([]productRow, 0, len(rows))
	for _, p := range rows {
		out = append(out, toProductRow(p, names))
	}
	return ok(c, out)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Produsul nu a fost gasit")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea produsului")
	}
	names, err := categoryNames(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea produsului")
	}
	return ok(c, toProductRow(p, names))
}

// resolveCategoryID maps the category *name* supplied by the form onto a
// category id, creating the category when no exact (case-sensitive) match
// exists. Runs inside the caller's transaction so the create-and-reference
// pair is atomic.
func resolveCategoryID(tx *gorm.DB, name string) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var cat domain.Category
	err := tx.Where("name = ?", name).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		cat = domain.Category{
			ID:        common.UUIDint64(),
			Name:      name,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&cat).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	id := cat.ID
	return &id, nil
}

func validateProductPayload(payload *productPayload) string {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" || payload.Price <= 0 {
		return "Numele si pretul sunt obligatorii"
	}
	return ""
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if msg := validateProductPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION", msg)
	}

	now := time.Now()
	p := domain.Product{
		ID:           common.UUIDint64(),
		Name:         payload.Name,
		Price:        payload.Price,
		Description:  payload.Description,
		ImageURL:     strings.TrimSpace(payload.ImageURL),
		IsAvailable:  true,
		IsVegetarian: payload.IsVegetarian,
		IsVegan:      payload.IsVegan,
		IsGlutenFree: payload.IsGlutenFree,
		IsDairyFree:  payload.IsDairyFree,
		IsSpicy:      payload.IsSpicy,
		IsNew:        payload.IsNew,
		IsPopular:    payload.IsPopular,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if payload.IsAvailable != nil {
		p.IsAvailable = *payload.IsAvailable
	}

	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		categoryID, err := resolveCategoryID(tx, payload.Category)
		if err != nil {
			return err
		}
		p.CategoryID = categoryID
		return tx.Create(&p).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la salvarea produsului")
	}

	names, _ := categoryNames(c)
	publishChange(c, "product.create", p.Name)
	return created(c, toProductRow(p, names))
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Produsul nu a fost gasit")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la preluarea produsului")
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if msg := validateProductPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION", msg)
	}

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		categoryID, err := resolveCategoryID(tx, payload.Category)
		if err != nil {
			return err
		}
		p.Name = payload.Name
		p.Price = payload.Price
		p.CategoryID = categoryID
		p.Description = payload.Description
		p.ImageURL = strings.TrimSpace(payload.ImageURL)
		if payload.IsAvailable != nil {
			p.IsAvailable = *payload.IsAvailable
		}
		p.IsVegetarian = payload.IsVegetarian
		p.IsVegan = payload.IsVegan
		p.IsGlutenFree = payload.IsGlutenFree
		p.IsDairyFree = payload.IsDairyFree
		p.IsSpicy = payload.IsSpicy
		p.IsNew = payload.IsNew
		p.IsPopular = payload.IsPopular
		p.UpdatedAt = time.Now()
		return tx.Save(&p).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la salvarea produsului")
	}

	names, _ := categoryNames(c)
	publishChange(c, "product.update", p.Name)
	return ok(c, toProductRow(p, names))
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Identificator invalid")
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Produsul nu a fost gasit")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea produsului")
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la stergerea produsului")
	}
	publishChange(c, "product.delete", p.Name)
	return ok(c, map[string]interface{}{"id": id})
}
