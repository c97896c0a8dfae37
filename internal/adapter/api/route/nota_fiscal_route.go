package route

import (
	"github.com/gin-gonic/gin"

	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/controller"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/middleware"
)

// RegisterNotaFiscalRoutes registra as rotas do ciclo de vida das notas fiscais.
// Emissão e cancelamento exigem papel com permissão de emitir.
func RegisterNotaFiscalRoutes(r *gin.RouterGroup, notaFiscalController *controller.NotaFiscalController) {
	notas := r.Group("/notas-fiscais")
	notas.Use(middleware.AuthMiddleware())
	{
		notas.POST("", middleware.RequireRole("admin", "emissor"), notaFiscalController.Emitir)
		notas.POST("/validar", notaFiscalController.Validar)
		notas.GET("", notaFiscalController.List)
		notas.GET("/:id", notaFiscalController.Get)
		notas.GET("/:id/xml", notaFiscalController.GetXML)
		notas.GET("/:id/status", notaFiscalController.ConsultarStatus)
		notas.POST("/:id/cancelar", middleware.RequireRole("admin", "emissor"), notaFiscalController.Cancelar)
	}
}
