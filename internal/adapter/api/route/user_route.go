package route

import (
	"github.com/gin-gonic/gin"

	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/controller"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/middleware"
)

// RegisterUserRoutes registra as rotas do módulo de usuários
func RegisterUserRoutes(r *gin.RouterGroup, userController *controller.UserController) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.POST("", middleware.RequireRole("admin"), userController.Create)
		users.GET("", middleware.RequireRole("admin"), userController.List)
		users.GET("/:id", userController.Get)
	}
}
