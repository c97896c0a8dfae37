package route

import (
	"github.com/gin-gonic/gin"

	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/controller"
)

// RegisterSetupRoutes registra a rota de inicialização do sistema.
// A rota só funciona enquanto nenhum usuário existe na base.
func RegisterSetupRoutes(r *gin.RouterGroup, userController *controller.UserController) {
	setup := r.Group("/setup")
	{
		setup.POST("/admin", userController.CreateAdminUser)
	}
}
