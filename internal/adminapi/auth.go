package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/app"
	"github.com/cafeteca/cafeteca-server/internal/auth"
	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/cafeteca/cafeteca-server/pkg/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerAuthRoutes() {
	webserver.ApiPOST("/login", login)
	webserver.ApiPOST("/logout", logout)
	webserver.ApiGET("/session", sessionInfo)
}

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Remember bool   `json:"remember" form:"remember"`
}

func loginFail(c echo.Context, status int, kind auth.FailureKind, username string) error {
	public := auth.PublicKind(kind)
	appCtx.Bus().Publish(app.TopicAdminLogin, username, c.RealIP(), "failed:"+string(kind))
	return fail(c, status, string(public), auth.Message(public))
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Cerere invalida")
	}
	username := strings.TrimSpace(payload.Username)
	if username == "" {
		username = strings.TrimSpace(payload.Email)
	}
	if username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Va rugam sa completati toate campurile")
	}

	limitKey := username + "|" + c.RealIP()
	if limiter != nil && limiter.Limited(limitKey) {
		return loginFail(c, http.StatusTooManyRequests, auth.FailureRateLimited, username)
	}

	var opr domain.SysOpr
	err := GetDB(c).Where("username = ? OR email = ?", username, username).First(&opr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if limiter != nil && limiter.Failed(limitKey) {
			return loginFail(c, http.StatusTooManyRequests, auth.FailureRateLimited, username)
		}
		return loginFail(c, http.StatusUnauthorized, auth.FailureUserNotFound, username)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "A aparut o eroare la autentificare.")
	}

	if !strings.EqualFold(opr.Status, common.ENABLED) {
		return loginFail(c, http.StatusUnauthorized, auth.FailureInvalidCredentials, username)
	}

	if !checkOperatorPassword(c, &opr, payload.Password) {
		if limiter != nil && limiter.Failed(limitKey) {
			return loginFail(c, http.StatusTooManyRequests, auth.FailureRateLimited, username)
		}
		return loginFail(c, http.StatusUnauthorized, auth.FailureInvalidCredentials, username)
	}

	if limiter != nil {
		limiter.Reset(limitKey)
	}

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", opr.ID).
		Updates(map[string]interface{}{"last_login": time.Now()})

	if err := webserver.SetLoginSession(c, &opr, payload.Remember); err != nil {
		zap.L().Error("failed to save session", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "A aparut o eroare la autentificare.")
	}

	lifetime := 24 * time.Hour
	if payload.Remember {
		lifetime = webserver.RememberMaxAge * time.Second
	}
	token, err := webserver.IssueToken(appCtx.Config().Web.Secret, &opr, lifetime)
	if err != nil {
		zap.L().Error("failed to issue token", zap.Error(err))
	}

	appCtx.Bus().Publish(app.TopicAdminLogin, opr.Username, c.RealIP(), "ok")

	return ok(c, map[string]interface{}{
		"operator": opr,
		"token":    token,
	})
}

// checkOperatorPassword verifies bcrypt hashes and transparently upgrades
// legacy sha256 rows imported from older deployments.
func checkOperatorPassword(c echo.Context, opr *domain.SysOpr, password string) bool {
	if common.CheckPassword(opr.Password, password) {
		return true
	}
	legacy := common.Sha256HashWithSalt(password, common.GetSecretSalt())
	if legacy != opr.Password {
		return false
	}
	if rehashed, err := common.HashPassword(password); err == nil {
		GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", opr.ID).
			Updates(map[string]interface{}{"password": rehashed, "updated_at": time.Now()})
	}
	return true
}

func logout(c echo.Context) error {
	identity, _ := webserver.CurrentIdentity(c)
	if err := webserver.ClearLoginSession(c); err != nil {
		zap.L().Warn("failed to clear session", zap.Error(err))
	}
	appCtx.Bus().Publish(app.TopicAdminLogout, identity.Username, c.RealIP())
	return ok(c, map[string]interface{}{"message": "Deconectat"})
}

func sessionInfo(c echo.Context) error {
	identity, authenticated := webserver.CurrentIdentity(c)
	if !authenticated {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Neautorizat")
	}
	var opr domain.SysOpr
	if err := GetDB(c).Where("username = ?", identity.Username).First(&opr).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Neautorizat")
	}
	return ok(c, opr)
}
