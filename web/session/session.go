// Package session moves the session token between the server and the
// client cookie. The token is the only client-held state; the session
// record itself lives in the tiered store.
package session

import (
	"net/http"
	"time"

	"cms-ui/database/model"

	"github.com/gin-gonic/gin"
)

const (
	tokenCookie = "cms-ui-token"
	contextKey  = "LOGIN_SESSION"
)

// SetToken writes the session token cookie: http-only, SameSite Lax,
// secure when served over TLS, expiring with the session.
func SetToken(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(tokenCookie, token, maxAge, "/", "", c.Request.TLS != nil, true)
}

// GetToken extracts the session token from the request cookie, empty
// when absent.
func GetToken(c *gin.Context) string {
	token, err := c.Cookie(tokenCookie)
	if err != nil {
		return ""
	}
	return token
}

// ClearToken expires the token cookie.
func ClearToken(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, "", -1, "/", "", c.Request.TLS != nil, true)
}

// SetLoginSession stashes the validated session in the request context
// for downstream handlers.
func SetLoginSession(c *gin.Context, session *model.Session) {
	c.Set(contextKey, session)
}

// GetLoginSession returns the validated session of the current
// request, nil when the request is unauthenticated.
func GetLoginSession(c *gin.Context) *model.Session {
	if obj, exists := c.Get(contextKey); exists {
		if session, ok := obj.(*model.Session); ok {
			return session
		}
	}
	return nil
}
