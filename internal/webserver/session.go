package webserver

import (
	"time"

	"github.com/cafeteca/cafeteca-server/internal/app"
	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName   = "cafeteca_session"
	appContextKey = "appctx"
	jwtContextKey = "token"

	sessKeyOprID    = "opr_id"
	sessKeyUsername = "username"
	sessKeyLevel    = "level"

	// RememberMaxAge extends the cookie lifetime when the operator ticks
	// "remember me"; otherwise the cookie expires with the browser session.
	RememberMaxAge = 30 * 24 * 60 * 60
)

func newCookieStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   0,
	}
	return store
}

// AppCtx returns the application context injected by the server middleware.
func AppCtx(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// hasSession reports whether the request carries an authenticated session
// cookie.
func hasSession(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	_, ok := sess.Values[sessKeyUsername].(string)
	return ok
}

// SetLoginSession writes the operator identity into the session cookie.
// remember controls the cookie lifetime, not server-side revocation: a
// non-remembered session simply expires with the browser.
func SetLoginSession(c echo.Context, opr *domain.SysOpr, remember bool) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessKeyOprID] = opr.ID
	sess.Values[sessKeyUsername] = opr.Username
	sess.Values[sessKeyLevel] = opr.Level
	sess.Options.MaxAge = 0
	if remember {
		sess.Options.MaxAge = RememberMaxAge
	}
	sess.Options.Path = "/"
	sess.Options.HttpOnly = true
	return sess.Save(c.Request(), c.Response())
}

// ClearLoginSession drops the session cookie.
func ClearLoginSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// Identity is the authenticated operator extracted from the session cookie
// or the JWT bearer token.
type Identity struct {
	OprID    int64
	Username string
	Level    string
}

// CurrentIdentity resolves the request identity, preferring the session.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	if sess, err := session.Get(sessionName, c); err == nil {
		if username, ok := sess.Values[sessKeyUsername].(string); ok {
			id := Identity{Username: username}
			if v, ok := sess.Values[sessKeyOprID].(int64); ok {
				id.OprID = v
			}
			if v, ok := sess.Values[sessKeyLevel].(string); ok {
				id.Level = v
			}
			return id, true
		}
	}
	if token, ok := c.Get(jwtContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			id := Identity{}
			if v, ok := claims["username"].(string); ok {
				id.Username = v
			}
			if v, ok := claims["level"].(string); ok {
				id.Level = v
			}
			if v, ok := claims["uid"].(float64); ok {
				id.OprID = int64(v)
			}
			return id, id.Username != ""
		}
	}
	return Identity{}, false
}

// IssueToken builds a signed JWT for API clients that cannot hold cookies.
func IssueToken(secret string, opr *domain.SysOpr, lifetime time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"uid":      opr.ID,
		"username": opr.Username,
		"level":    opr.Level,
		"exp":      time.Now().Add(lifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
