package adminapi

import (
	"net/http"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerSettingsRoutes() {
	webserver.ApiGET("/settings", listSettings)
	webserver.ApiPUT("/settings", saveSettings)
}

// listSettings returns the settings grouped by category as the editor form
// expects them.
func listSettings(c echo.Context) error {
	var rows []domain.SysConfig
	if err := GetDB(c).Order("type ASC, sort ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea setarilor")
	}
	grouped := map[string]map[string]string{}
	for _, row := range rows {
		if grouped[row.Type] == nil {
			grouped[row.Type] = map[string]string{}
		}
		grouped[row.Type][row.Name] = row.Value
	}
	return ok(c, grouped)
}

func saveSettings(c echo.Context) error {
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	if err := appCtx.SaveSettings(payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION", "Setari invalide: "+err.Error())
	}
	publishChange(c, "settings.update", "")
	return ok(c, map[string]interface{}{"message": "Setari salvate"})
}
