// Package controller provides HTTP request handlers for the cms-ui
// admin panel: login, settings, navigation, categories and status.
package controller

import (
	"net/http"

	"cms-ui/web/service"
	"cms-ui/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication check shared by every
// protected controller.
type BaseController struct {
	authService *service.AuthService
}

// NewPanelGroup returns the /panel route group guarded by the login
// check.
func NewPanelGroup(g *gin.RouterGroup, authService *service.AuthService) *gin.RouterGroup {
	base := &BaseController{authService: authService}
	panel := g.Group("/panel")
	panel.Use(base.checkLogin)
	return panel
}

// checkLogin is a middleware that resolves the token cookie and aborts
// unauthenticated requests.
func (a *BaseController) checkLogin(c *gin.Context) {
	loginSession := a.authService.Validate(session.GetToken(c))
	if loginSession == nil {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "login required")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		}
		c.Abort()
		return
	}
	session.SetLoginSession(c, loginSession)
	c.Next()
}
