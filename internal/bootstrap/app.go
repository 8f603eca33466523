package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shipdocs/invoicegen/internal/config"
	"github.com/shipdocs/invoicegen/internal/handler"
	"github.com/shipdocs/invoicegen/internal/logger"
	"github.com/shipdocs/invoicegen/internal/service"
	"github.com/shipdocs/invoicegen/internal/session"
	"github.com/shipdocs/invoicegen/pkg/templatefill"
)

type App struct {
	Echo     *echo.Echo
	Sessions *session.Store
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Template layout: built-in unless an override file is configured
	layout := templatefill.DefaultLayout()
	if path := config.DefaultEnvConfig.LAYOUT_FILE; path != "" {
		loaded, err := templatefill.LoadLayout(path)
		if err != nil {
			return fmt.Errorf("failed to load layout file: %w", err)
		}
		layout = loaded
		logger.InfoLog(ctx, "Template layout loaded from %s", path)
	}

	// Initialize dependencies
	a.Sessions = session.NewStore(config.DefaultEnvConfig.SESSION_TTL)
	fillSvc := service.NewFillService(layout)
	docHandler := handler.NewDocumentHandler(a.Sessions, config.DefaultEnvConfig.MAX_UPLOAD_MB)
	invHandler := handler.NewInvoiceHandler(a.Sessions, fillSvc)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(docHandler, invHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(docHandler *handler.DocumentHandler, invHandler *handler.InvoiceHandler) {
	docGroup := a.Echo.Group("/documents")
	docGroup.POST("/template", docHandler.UploadTemplateHandler)
	docGroup.POST("/pi", docHandler.UploadPIHandler)
	docGroup.POST("/products", docHandler.UploadProductListHandler)
	docGroup.POST("/packing", docHandler.UploadPackingHandler)
	docGroup.POST("/hscodes", docHandler.UploadHSCodesHandler)

	a.Echo.POST("/invoice/fill", invHandler.FillHandler)
	a.Echo.GET("/invoice/download", invHandler.DownloadHandler)

	a.Echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
