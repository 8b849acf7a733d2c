package publicapi

import (
	"github.com/cafeteca/cafeteca-server/internal/app"
	"github.com/cafeteca/cafeteca-server/internal/notify"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var (
	appCtx     app.AppContext
	dispatcher *notify.Dispatcher
)

// InitRouter wires the public, unauthenticated API routes. Must run after
// webserver.Init.
func InitRouter(ctx app.AppContext) {
	appCtx = ctx
	dispatcher = notify.NewDispatcher(ctx.Config())

	webserver.PubGET("/menu", menu)
	webserver.PubGET("/events", publicEvents)
	webserver.PubGET("/home", home)
	webserver.PubGET("/site", siteInfo)
	webserver.PubPOST("/contact", contact)
}

func GetDB(c echo.Context) *gorm.DB {
	return appCtx.DB()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, data)
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]string{"error": message, "code": code})
}
