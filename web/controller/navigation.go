package controller

import (
	"cms-ui/database/model"
	"cms-ui/web/entity"
	"cms-ui/web/service"

	"github.com/gin-gonic/gin"
)

// NavigationController manages the site navigation document and the
// category table.
type NavigationController struct {
	navigationService *service.NavigationService
	categoryService   *service.CategoryService
}

// NewNavigationController creates a new NavigationController and initializes its routes.
func NewNavigationController(g *gin.RouterGroup, navigationService *service.NavigationService, categoryService *service.CategoryService) *NavigationController {
	a := &NavigationController{
		navigationService: navigationService,
		categoryService:   categoryService,
	}
	a.initRouter(g)
	return a
}

func (a *NavigationController) initRouter(g *gin.RouterGroup) {
	nav := g.Group("/navigation")
	nav.GET("/list", a.listNavigation)
	nav.POST("/update", a.updateNavigation)
	nav.POST("/upsert", a.upsertNavItem)
	nav.POST("/del/:id", a.deleteNavItem)

	cat := g.Group("/category")
	cat.GET("/list", a.listCategories)
	cat.POST("/save", a.saveCategory)
	cat.POST("/del/:id", a.deleteCategory)
}

func (a *NavigationController) listNavigation(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	jsonObj(c, a.navigationService.ReadNavigation(includeInactive), nil)
}

func (a *NavigationController) updateNavigation(c *gin.Context) {
	items := make([]entity.NavItem, 0)
	if err := c.ShouldBindJSON(&items); err != nil {
		jsonMsg(c, "modify navigation", err)
		return
	}
	jsonMsg(c, "modify navigation", a.navigationService.WriteNavigation(items))
}

func (a *NavigationController) upsertNavItem(c *gin.Context) {
	var item entity.NavItem
	if err := c.ShouldBindJSON(&item); err != nil {
		jsonMsg(c, "modify navigation", err)
		return
	}
	jsonMsg(c, "modify navigation", a.navigationService.UpsertNavItem(item))
}

func (a *NavigationController) deleteNavItem(c *gin.Context) {
	jsonMsg(c, "modify navigation", a.navigationService.DeleteNavItem(c.Param("id")))
}

func (a *NavigationController) listCategories(c *gin.Context) {
	categories, err := a.categoryService.GetCategories()
	jsonObj(c, categories, err)
}

func (a *NavigationController) saveCategory(c *gin.Context) {
	category := &model.Category{}
	if err := c.ShouldBind(category); err != nil {
		jsonMsg(c, "save category", err)
		return
	}
	jsonMsg(c, "save category", a.categoryService.SaveCategory(category))
}

func (a *NavigationController) deleteCategory(c *gin.Context) {
	jsonMsg(c, "delete category", a.categoryService.DeleteCategory(c.Param("id")))
}
