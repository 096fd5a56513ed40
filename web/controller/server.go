package controller

import (
	"strconv"

	"cms-ui/logger"
	"cms-ui/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes host status and panel logs.
type ServerController struct {
	serverService *service.ServerService
}

// NewServerController creates a new ServerController and initializes its routes.
func NewServerController(g *gin.RouterGroup, serverService *service.ServerService) *ServerController {
	a := &ServerController{serverService: serverService}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/server")

	g.GET("/status", a.status)
	g.GET("/logs", a.logs)
}

func (a *ServerController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *ServerController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil || count <= 0 {
		count = 50
	}
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, logger.GetLogs(count, level), nil)
}
