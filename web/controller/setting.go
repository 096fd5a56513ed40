package controller

import (
	"cms-ui/web/service"
	"cms-ui/web/session"

	"github.com/gin-gonic/gin"
)

// updateUserForm represents the password change request.
type updateUserForm struct {
	OldPassword string `json:"oldPassword" form:"oldPassword"`
	NewPassword string `json:"newPassword" form:"newPassword"`
}

// SettingController handles settings and password management.
type SettingController struct {
	settingService *service.SettingService
	userService    *service.UserService
}

// NewSettingController creates a new SettingController and initializes its routes.
func NewSettingController(g *gin.RouterGroup, settingService *service.SettingService, userService *service.UserService) *SettingController {
	a := &SettingController{
		settingService: settingService,
		userService:    userService,
	}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/setting")

	g.POST("/all", a.getAllSetting)
	g.POST("/update", a.updateSetting)
	g.POST("/updateUser", a.updateUser)
}

// getAllSetting returns the merged settings map. The merge downgrades
// gracefully when the primary store is unreachable.
func (a *SettingController) getAllSetting(c *gin.Context) {
	jsonObj(c, a.settingService.ReadSettings(), nil)
}

// updateSetting writes the submitted pairs through all storage tiers.
func (a *SettingController) updateSetting(c *gin.Context) {
	values := map[string]string{}
	if err := c.ShouldBindJSON(&values); err != nil {
		jsonMsg(c, "modify settings", err)
		return
	}
	err := a.settingService.WriteSettings(values)
	jsonMsg(c, "modify settings", err)
}

// updateUser changes the administrator password, revoking every
// outstanding session including the current one.
func (a *SettingController) updateUser(c *gin.Context) {
	var form updateUserForm
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, "modify user", err)
		return
	}

	loginSession := session.GetLoginSession(c)
	err := a.userService.ChangePassword(loginSession.UserId, form.OldPassword, form.NewPassword)
	if err == nil {
		session.ClearToken(c)
	}
	jsonMsg(c, "modify user", err)
}
