package publicapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

// publicEvents lists active events, upcoming only by default. Past events
// are included when the events.show_past setting is on or the visitor asks
// with ?past=true.
func publicEvents(c echo.Context) error {
	showPast := appCtx.GetSettingsBoolValue("events", "show_past") ||
		cast.ToBool(c.QueryParam("past"))

	db := GetDB(c).Model(&domain.Event{}).Where("is_active = ?", true)
	if !showPast {
		db = db.Where("date >= ?", time.Now().Format("2006-01-02"))
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		pattern := "%" + q + "%"
		if db.Name() == "postgres" {
			db = db.Where("title ILIKE ? OR description ILIKE ? OR location ILIKE ?",
				pattern, pattern, pattern)
		} else {
			db = db.Where(
				"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(location) LIKE LOWER(?)",
				pattern, pattern, pattern)
		}
	}

	var rows []domain.Event
	if err := db.Order("date ASC, time ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Eroare la incarcarea evenimentelor")
	}
	return ok(c, map[string]interface{}{"events": rows})
}
