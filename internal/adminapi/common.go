package adminapi

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/app"
	"github.com/cafeteca/cafeteca-server/internal/auth"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	appCtx  app.AppContext
	limiter *auth.Limiter
)

// InitRouter wires the admin API route files against the application
// context. Must run after webserver.Init.
func InitRouter(ctx app.AppContext) {
	appCtx = ctx

	maxFailures := ctx.GetSettingsInt64Value("auth", "max_login_failures")
	if maxFailures <= 0 {
		maxFailures = 5
	}
	windowSec := ctx.GetSettingsInt64Value("auth", "login_failure_window")
	if windowSec <= 0 {
		windowSec = 900
	}
	var err error
	limiter, err = auth.NewLimiter(
		filepath.Join(ctx.Config().System.Workdir, "data", "authlimit.db"),
		int(maxFailures),
		time.Duration(windowSec)*time.Second,
	)
	if err != nil {
		zap.L().Error("login limiter init failed", zap.Error(err))
	}

	registerAuthRoutes()
	registerCategoryRoutes()
	registerProductRoutes()
	registerEventRoutes()
	registerHomeSectionRoutes()
	registerUploadRoutes()
	registerDashboardRoutes()
	registerExportRoutes()
	registerSettingsRoutes()
	registerMessageRoutes()
}

// GetDB returns the request database handle.
func GetDB(c echo.Context) *gorm.DB {
	return appCtx.DB()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// fail renders the error envelope: a user-facing message plus a stable
// machine-readable code.
func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]string{"error": message, "code": code})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, pageSize = 1, 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":     rows,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// publishChange records an audit entry for a content mutation.
func publishChange(c echo.Context, action, desc string) {
	identity, _ := webserver.CurrentIdentity(c)
	appCtx.Bus().Publish(app.TopicEntityChange, identity.Username, c.RealIP(), action, desc)
}

// isPostgres reports whether the handle talks to postgres, which supports
// ILIKE for case-insensitive matching.
func isPostgres(db *gorm.DB) bool {
	return db.Name() == "postgres"
}

// whereTextMatch appends a case-insensitive substring match over the given
// columns.
func whereTextMatch(db *gorm.DB, q string, columns ...string) *gorm.DB {
	if q == "" || len(columns) == 0 {
		return db
	}
	op := "LIKE"
	pattern := "%" + q + "%"
	if isPostgres(db) {
		op = "ILIKE"
	}
	clause := ""
	args := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		if i > 0 {
			clause += " OR "
		}
		if op == "LIKE" {
			clause += "LOWER(" + col + ") LIKE LOWER(?)"
		} else {
			clause += col + " ILIKE ?"
		}
		args = append(args, pattern)
	}
	return db.Where(clause, args...)
}
