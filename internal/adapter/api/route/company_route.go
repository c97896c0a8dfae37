package route

import (
	"github.com/gin-gonic/gin"

	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/controller"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/middleware"
)

// RegisterCompanyRoutes registra as rotas do módulo de empresas emitentes
func RegisterCompanyRoutes(r *gin.RouterGroup, companyController *controller.CompanyController) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.POST("", middleware.RequireRole("admin"), companyController.Create)
		companies.GET("", companyController.List)
		companies.GET("/:id", companyController.Get)
		companies.PUT("/:id", middleware.RequireRole("admin"), companyController.Update)
		companies.GET("/cnpj/:cnpj", companyController.FindByCNPJ)
		companies.PATCH("/:id/status/:status", middleware.RequireRole("admin"), companyController.UpdateStatus)

		// Operações fiscais da empresa
		companies.POST("/:id/certificado", middleware.RequireRole("admin"), companyController.UploadCertificado)
		companies.PATCH("/:id/ambiente", middleware.RequireRole("admin"), companyController.AlterarAmbiente)
		companies.PATCH("/:id/serie", middleware.RequireRole("admin"), companyController.DefinirSerie)
	}
}
