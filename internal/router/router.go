package router

import (
	"time"

	"github.com/joselitopapi14/crud-fenix-tarea/internal/config"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/handler"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/middleware"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/repository"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/service"
	"github.com/joselitopapi14/crud-fenix-tarea/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository/BlobStore ← DB/Config
func New(cfg *config.Config, db *gorm.DB, blobs storage.BlobStore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	productoRepo := repository.NewProductoRepository(db)
	productoSvc := service.NewProductoService(productoRepo, blobs, cfg.ReportLogoPath)
	productosH := handler.NewProductosHandler(productoSvc)

	r.GET("/health", handler.Health(db))

	// Local-driver blobs are public: imagen locators resolve under /storage.
	if cfg.StorageDriver == "local" {
		r.Static("/storage", cfg.StorageLocalPath)
	}

	prods := r.Group("/productos")
	{
		prods.GET("", productosH.Listar)
		prods.POST("", productosH.Crear)
		prods.GET("/export/pdf", productosH.ExportarPDF)
		prods.GET("/export/excel", productosH.ExportarExcel)
		prods.GET("/:id", productosH.ObtenerPorID)
		prods.PUT("/:id", productosH.Actualizar)
		prods.PATCH("/:id", productosH.Actualizar)
		prods.DELETE("/:id", productosH.Eliminar)
	}

	return r
}
