package publicapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// menuFilter captures the visitor-facing menu query parameters.
type menuFilter struct {
	Query        string
	CategoryID   int64
	IsVegetarian bool
	IsVegan      bool
	IsGlutenFree bool
	IsDairyFree  bool
	IsSpicy      bool
	IsPopular    bool
	IsNew        bool
}

func menuFilterFromQuery(c echo.Context) menuFilter {
	return menuFilter{
		Query:        strings.TrimSpace(c.QueryParam("q")),
		CategoryID:   cast.ToInt64(c.QueryParam("category")),
		IsVegetarian: cast.ToBool(c.QueryParam("vegetarian")),
		IsVegan:      cast.ToBool(c.QueryParam("vegan")),
		IsGlutenFree: cast.ToBool(c.QueryParam("gluten_free")),
		IsDairyFree:  cast.ToBool(c.QueryParam("dairy_free")),
		IsSpicy:      cast.ToBool(c.QueryParam("spicy")),
		IsPopular:    cast.ToBool(c.QueryParam("popular")),
		IsNew:        cast.ToBool(c.QueryParam("new")),
	}
}

// matchesFilter applies every requested dietary tag conjunctively plus the
// free-text match over name and description.
func matchesFilter(p domain.Product, f menuFilter) bool {
	if !p.IsAvailable {
		return false
	}
	if f.CategoryID != 0 {
		if p.CategoryID == nil || *p.CategoryID != f.CategoryID {
			return false
		}
	}
	if f.IsVegetarian && !p.IsVegetarian {
		return false
	}
	if f.IsVegan && !p.IsVegan {
		return false
	}
	if f.IsGlutenFree && !p.IsGlutenFree {
		return false
	}
	if f.IsDairyFree && !p.IsDairyFree {
		return false
	}
	if f.IsSpicy && !p.IsSpicy {
		return false
	}
	if f.IsPopular && !p.IsPopular {
		return false
	}
	if f.IsNew && !p.IsNew {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

func filterProducts(products []domain.Product, f menuFilter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// menuCategory is one rendered menu group: the category plus its products.
type menuCategory struct {
	domain.Category
	Products []domain.Product `json:"products"`
}

// buildMenu groups the filtered products under their active categories,
// dropping categories left empty by the filters. Products without a category
// are grouped under a synthetic trailing entry.
func buildMenu(categories []domain.Category, products []domain.Product) []menuCategory {
	cl := collate.New(language.Romanian, collate.IgnoreCase)

	byCategory := make(map[int64][]domain.Product)
	var uncategorized []domain.Product
	for _, p := range products {
		if p.CategoryID == nil {
			uncategorized = append(uncategorized, p)
			continue
		}
		byCategory[*p.CategoryID] = append(byCategory[*p.CategoryID], p)
	}

	out := make([]menuCategory, 0, len(categories)+1)
	for _, cat := range categories {
		if !cat.IsActive {
			continue
		}
		items := byCategory[cat.ID]
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			return cl.CompareString(items[i].Name, items[j].Name) < 0
		})
		out = append(out, menuCategory{Category: cat, Products: items})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return cl.CompareString(out[i].Name, out[j].Name) < 0
	})

	if len(uncategorized) > 0 {
		sort.SliceStable(uncategorized, func(i, j int) bool {
			return cl.CompareString(uncategorized[i].Name, uncategorized[j].Name) < 0
		})
		out = append(out, menuCategory{
			Category: domain.Category{Name: "Altele", IsActive: true},
			Products: uncategorized,
		})
	}
	return out
}

// menu renders the public menu: active categories with their available
// products, narrowed by the dietary and text filters.
func menu(c echo.Context) error {
	var categories []domain.Category
	if err := GetDB(c).Where("is_active = ?", true).Find(&categories).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea meniului")
	}
	var products []domain.Product
	if err := GetDB(c).Where("is_available = ?", true).Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea meniului")
	}

	filtered := filterProducts(products, menuFilterFromQuery(c))
	return ok(c, map[string]interface{}{
		"currency":   appCtx.GetSettingsStringValue("menu", "currency"),
		"categories": buildMenu(categories, filtered),
	})
}
