package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
)

func registerExportRoutes() {
	webserver.ApiGET("/export/products.csv", exportProductsCSV)
	webserver.ApiGET("/export/products.xlsx", exportProductsXLSX)
}

// productExport is the flat export row shared by the CSV and XLSX writers.
type productExport struct {
	ID           int64   `csv:"id"`
	Name         string  `csv:"name"`
	Category     string  `csv:"category"`
	Price        float64 `csv:"price"`
	Description  string  `csv:"description"`
	IsAvailable  bool    `csv:"is_available"`
	IsVegetarian bool    `csv:"is_vegetarian"`
	IsVegan      bool    `csv:"is_vegan"`
	IsGlutenFree bool    `csv:"is_gluten_free"`
	IsDairyFree  bool    `csv:"is_dairy_free"`
	IsSpicy      bool    `csv:"is_spicy"`
	CreatedAt    string  `csv:"created_at"`
}

func loadProductExports(c echo.Context) ([]productExport, error) {
	var rows []domain.Product
	if err := GetDB(c).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	names, err := categoryNames(c)
	if err != nil {
		return nil, err
	}
	out := make([]productExport, 0, len(rows))
	for _, p := range rows {
		category := NoCategoryLabel
		if p.CategoryID != nil {
			if name, found := names[*p.CategoryID]; found {
				category = name
			}
		}
		out = append(out, productExport{
			ID:           p.ID,
			Name:         p.Name,
			Category:     category,
			Price:        p.Price,
			Description:  p.Description,
			IsAvailable:  p.IsAvailable,
			IsVegetarian: p.IsVegetarian,
			IsVegan:      p.IsVegan,
			IsGlutenFree: p.IsGlutenFree,
			IsDairyFree:  p.IsDairyFree,
			IsSpicy:      p.IsSpicy,
			CreatedAt:    p.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return out, nil
}

func exportFilename(ext string) string {
	return fmt.Sprintf("products_%s.%s", time.Now().Format("20060102_150405"), ext)
}

func exportProductsCSV(c echo.Context) error {
	rows, err := loadProductExports(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la exportul produselor")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", exportFilename("csv")))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response())
}

func exportProductsXLSX(c echo.Context) error {
	rows, err := loadProductExports(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la exportul produselor")
	}

	headers := []string{"ID", "Nume", "Categorie", "Pret", "Descriere",
		"Disponibil", "Vegetarian", "Vegan", "Fara gluten", "Fara lactate", "Picant", "Creat la"}

	xlsx := excelize.NewFile()
	sheet := xlsx.GetSheetName(1)
	for i, h := range headers {
		xlsx.SetCellValue(sheet, fmt.Sprintf("%s1", excelize.ToAlphaString(i)), h)
	}
	for r, row := range rows {
		values := []interface{}{row.ID, row.Name, row.Category, row.Price, row.Description,
			row.IsAvailable, row.IsVegetarian, row.IsVegan, row.IsGlutenFree, row.IsDairyFree,
			row.IsSpicy, row.CreatedAt}
		for col, v := range values {
			xlsx.SetCellValue(sheet, fmt.Sprintf("%s%d", excelize.ToAlphaString(col), r+2), v)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", exportFilename("xlsx")))
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return xlsx.Write(c.Response())
}
