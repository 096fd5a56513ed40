package controller

import (
	"net/http"

	"cms-ui/logger"
	"cms-ui/web/service"
	"cms-ui/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// IndexController handles login and logout.
type IndexController struct {
	BaseController

	authService    *service.AuthService
	userService    *service.UserService
	sessionService *service.SessionService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup, authService *service.AuthService, userService *service.UserService, sessionService *service.SessionService) *IndexController {
	a := &IndexController{
		BaseController: BaseController{authService: authService},
		authService:    authService,
		userService:    userService,
		sessionService: sessionService,
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

// login authenticates the administrator and issues a session token
// carried by an http-only cookie. Failures answer with a generic
// message that never reveals whether the username existed.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.Username == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "username and password are required")
		return
	}

	// Heals a wiped database before the credential check.
	if err := a.userService.EnsureDefaultAdmin(); err != nil {
		logger.Warning("default administrator bootstrap failed:", err)
	}

	user, err := a.authService.Authenticate(form.Username, form.Password)
	if err != nil {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		jsonMsg(c, "", err)
		return
	}

	loginSession, err := a.sessionService.CreateSession(user.Id, user.Username)
	if err != nil {
		jsonMsg(c, "create session", err)
		return
	}

	session.SetToken(c, loginSession.Token, loginSession.ExpiresAt)
	logger.Infof("%s logged in successfully from %s", user.Username, getRemoteIp(c))
	jsonMsg(c, "login successful", nil)
}

// logout revokes the current session and clears the cookie. Already
// revoked sessions log out cleanly as well.
func (a *IndexController) logout(c *gin.Context) {
	if token := session.GetToken(c); token != "" {
		a.sessionService.DestroySession(token)
	}
	session.ClearToken(c)
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}
