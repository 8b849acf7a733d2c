package webserver

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/app"
	"github.com/cafeteca/cafeteca-server/pkg/metrics"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/cafeteca/cafeteca-server/docs"
)

var server *WebServer

// WebServer wraps echo and the two route groups: the gated admin API and
// the public site API.
type WebServer struct {
	root        *echo.Echo
	appCtx      app.AppContext
	adminGroup  *echo.Group
	publicGroup *echo.Group
}

// Init builds the web server around the application context. Route files
// register their endpoints afterwards through the Api*/Pub* helpers.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	cfg := appCtx.Config()

	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(session.Middleware(newCookieStore(cfg.Web.Secret)))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	})

	// Stored objects are public by URL, matching the object storage
	// collaborator's public-URL contract.
	e.Static("/public/storage", filepath.Join(cfg.System.Workdir, "storage"))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	adminGroup := e.Group("/admin")
	adminGroup.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.Web.Secret),
		ContextKey:  jwtContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		Skipper: func(c echo.Context) bool {
			// A valid session cookie short-circuits the JWT check; the
			// login endpoint is open by definition.
			if c.Path() == "/admin/login" {
				return true
			}
			return hasSession(c)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Neautorizat"})
		},
	}))

	publicGroup := e.Group("/api")

	server = &WebServer{
		root:        e,
		appCtx:      appCtx,
		adminGroup:  adminGroup,
		publicGroup: publicGroup,
	}
	return server
}

// Listen starts serving and blocks until the listener fails or closes.
func Listen() error {
	cfg := server.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	return server.root.Start(addr)
}

// Shutdown stops the HTTP listener gracefully.
func Shutdown() error {
	if server == nil {
		return nil
	}
	return server.root.Close()
}

// Instance exposes the echo engine for tests.
func Instance() *echo.Echo {
	return server.root
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			metrics.CounterInc(metrics.MetricHTTPRequests)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)))
			return err
		}
	}
}

// ApiGET registers an admin-gated GET route.
func ApiGET(path string, h echo.HandlerFunc) {
	server.adminGroup.GET(path, h)
}

// ApiPOST registers an admin-gated POST route.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.adminGroup.POST(path, h)
}

// ApiPUT registers an admin-gated PUT route.
func ApiPUT(path string, h echo.HandlerFunc) {
	server.adminGroup.PUT(path, h)
}

// ApiDELETE registers an admin-gated DELETE route.
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.adminGroup.DELETE(path, h)
}

// PubGET registers a public GET route.
func PubGET(path string, h echo.HandlerFunc) {
	server.publicGroup.GET(path, h)
}

// PubPOST registers a public POST route.
func PubPOST(path string, h echo.HandlerFunc) {
	server.publicGroup.POST(path, h)
}
