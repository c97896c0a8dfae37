package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/GuiEstevamCorrea/AxFisco/docs"
	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/controller"
	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/api/route"
	"github.com/GuiEstevamCorrea/AxFisco/internal/adapter/repository"
	"github.com/GuiEstevamCorrea/AxFisco/internal/application/usecase"
	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/notafiscal"
	"github.com/GuiEstevamCorrea/AxFisco/internal/infrastructure/danfe"
	"github.com/GuiEstevamCorrea/AxFisco/internal/infrastructure/database"
	"github.com/GuiEstevamCorrea/AxFisco/internal/infrastructure/mailer"
	"github.com/GuiEstevamCorrea/AxFisco/internal/infrastructure/sefaz"
	"github.com/GuiEstevamCorrea/AxFisco/internal/infrastructure/storage"
	"github.com/GuiEstevamCorrea/AxFisco/internal/infrastructure/xmlgen"
	"github.com/GuiEstevamCorrea/AxFisco/pkg/logger"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewApp monta a aplicação: banco, repositórios, gateways fiscais,
// casos de uso, controllers e rotas
func NewApp() *App {
	appLogger := logger.NewLogger()

	// MIGRATE_ON_START aplica as migrações SQL de MIGRATIONS_PATH
	// antes de abrir o pool
	if os.Getenv("MIGRATE_ON_START") == "true" {
		if err := database.RunMigrations(); err != nil {
			log.Fatalf("erro ao aplicar migrações: %v", err)
		}
	}

	db, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("erro ao conectar ao banco de dados: %v", err)
	}

	// Repositórios
	companyRepo := repository.NewCompanyRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	notaRepo := repository.NewNotaFiscalRepository(db)
	itemRepo := repository.NewItemNotaFiscalRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Gateways fiscais
	ambiente := os.Getenv("SEFAZ_AMBIENTE")
	if ambiente == "" {
		ambiente = "homologacao"
	}
	sefazGateway := sefaz.NewClient(ambiente, appLogger)
	nfseGateway := sefaz.NewNFSeClient(ambiente, appLogger)
	xmlGateway := xmlgen.NewGerador()

	// Pós-processamento da emissão
	pdfGateway := danfe.NewGerador(appLogger)
	emailGateway := mailer.NewMailerFromEnv(appLogger)
	storageGateway := storage.NewLocalStorageFromEnv(appLogger)

	// Casos de uso
	emitirUseCase := usecase.NewEmitirNotaFiscalUseCase(
		companyRepo, customerRepo, productRepo, notaRepo, itemRepo,
		xmlGateway, sefazGateway, notafiscal.FonteAleatoria{}, appLogger,
	).ComGatewayNFSe(nfseGateway).
		ComPosProcessamento(pdfGateway, emailGateway, storageGateway)
	validarUseCase := usecase.NewValidarDadosNotaFiscalUseCase(companyRepo, customerRepo, productRepo, appLogger)
	consultarUseCase := usecase.NewConsultarStatusNotaFiscalUseCase(notaRepo, sefazGateway, appLogger)
	cancelarUseCase := usecase.NewCancelarNotaFiscalUseCase(notaRepo, sefazGateway, appLogger)
	listarUseCase := usecase.NewListarNotasFiscaisUseCase(notaRepo, appLogger)
	createCustomerUseCase := usecase.NewCreateCustomerUseCase(customerRepo, appLogger)

	// Controllers
	authController := controller.NewAuthController(userRepo, appLogger)
	userController := controller.NewUserController(userRepo, appLogger)
	companyController := controller.NewCompanyController(companyRepo, appLogger)
	customerController := controller.NewCustomerController(createCustomerUseCase, customerRepo, appLogger)
	productController := controller.NewProductController(productRepo, appLogger)
	notaFiscalController := controller.NewNotaFiscalController(
		emitirUseCase, validarUseCase, consultarUseCase, cancelarUseCase, listarUseCase,
		notaRepo, itemRepo, appLogger,
	)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	route.RegisterSetupRoutes(api, userController)
	route.RegisterAuthRoutes(api, authController)
	route.RegisterUserRoutes(api, userController)
	route.RegisterCompanyRoutes(api, companyController)
	route.RegisterCustomerRoutes(api, customerController)
	route.RegisterProductRoutes(api, productController)
	route.RegisterNotaFiscalRoutes(api, notaFiscalController)

	return &App{
		router: router,
		db:     db,
		logger: appLogger,
	}
}

// Start inicia o servidor HTTP
func (a *App) Start() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("servidor iniciado", "port", port)
	if err := a.router.Run(":" + port); err != nil {
		log.Fatalf("erro ao iniciar o servidor: %v", err)
	}
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
