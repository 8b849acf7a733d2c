package publicapi

import (
	"github.com/labstack/echo/v4"
)

// siteInfo exposes the public site settings used by the frontend shell.
func siteInfo(c echo.Context) error {
	get := appCtx.GetSettingsStringValue
	return ok(c, map[string]string{
		"title":         get("site", "title"),
		"slogan":        get("site", "slogan"),
		"contact_email": get("site", "contact_email"),
		"contact_phone": get("site", "contact_phone"),
		"address":       get("site", "address"),
		"opening_hours": get("site", "opening_hours"),
		"currency":      get("menu", "currency"),
	})
}
