package publicapi

import (
	"net/http"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/labstack/echo/v4"
)

// home returns the active landing-page sections in display order.
func home(c echo.Context) error {
	var rows []domain.HomeSection
	if err := GetDB(c).Where("is_active = ?", true).
		Order("display_order ASC, id ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea paginii")
	}
	return ok(c, map[string]interface{}{"sections": rows})
}
