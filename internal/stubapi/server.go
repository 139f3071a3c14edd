package stubapi

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/pkg/logger"
)

// Config opciones del backend simulado.
type Config struct {
	AppName     string
	JWT         JWTConfig
	SwaggerFile string // vacío o inexistente = sin /docs
}

// New arma la app Fiber con las rutas del LIMS bajo /api.
func New(cfg Config, store *Store, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    int(dto.MaxDocumentBytes) + 5<<20,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("stub")
		return err
	})

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "LIMS API (stub)",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})

	Routes(app, cfg, store)
	return app
}

// Routes registra los endpoints. La autorización por rol replica la tabla de capacidades del cliente.
func Routes(app *fiber.App, cfg Config, store *Store) {
	h := &handlers{store: store}
	api := app.Group("/api")

	api.Post("/auth/login", loginHandler(store, cfg.JWT))

	protected := api.Group("/", AuthMiddleware(cfg.JWT.Secret))
	can := func(c auth.Capability) fiber.Handler { return RequireRole(roleNames(c)...) }

	equipos := protected.Group("/equipos")
	equipos.Get("/", h.listEquipment)
	equipos.Get("/:id", h.getEquipment)
	equipos.Post("/", can(auth.CapEquipmentWrite), h.saveEquipment)
	equipos.Put("/:id", can(auth.CapEquipmentWrite), h.saveEquipment)
	equipos.Delete("/:id", can(auth.CapEquipmentDelete), h.deleteEquipment)

	plantas := protected.Group("/ubicaciones/plantas")
	plantas.Get("/", h.listPlants)
	plantas.Get("/:id", h.getPlant)
	plantas.Post("/", can(auth.CapPlantWrite), h.savePlant)
	plantas.Put("/:id", can(auth.CapPlantWrite), h.savePlant)
	plantas.Delete("/:id", can(auth.CapPlantDelete), h.deletePlant)

	muestreo := protected.Group("/muestreo/solicitudes")
	muestreo.Get("/", h.listSamples)
	muestreo.Post("/", can(auth.CapSampleWrite), h.createSample)
	muestreo.Put("/:id", can(auth.CapSampleWrite), h.updateSample)
	muestreo.Delete("/:id", can(auth.CapSampleWrite), h.deleteSample)

	analisis := protected.Group("/analisis")
	analisis.Get("/", h.listAnalyses)
	analisis.Get("/:id", h.getAnalysis)
	analisis.Post("/", can(auth.CapAnalysisWrite), h.createAnalysis)
	analisis.Put("/:id", can(auth.CapAnalysisWrite), h.updateAnalysis)
	analisis.Delete("/:id", can(auth.CapAnalysisWrite), h.deleteAnalysis)

	inv := protected.Group("/inventario")
	inv.Get("/polvos", h.listPowders)
	inv.Post("/polvos", can(auth.CapInventoryWrite), h.createPowder)
	inv.Put("/polvos/:id", can(auth.CapInventoryWrite), h.updatePowder)
	inv.Delete("/polvos/:id", can(auth.CapInventoryWrite), h.deletePowder)
	inv.Get("/medios", h.listMedia)
	inv.Post("/medios", can(auth.CapInventoryWrite), h.saveMedium)
	inv.Put("/medios/:id", can(auth.CapInventoryWrite), h.saveMedium)
	inv.Get("/stock", h.listStock)

	mfg := protected.Group("/manufactura")
	mfg.Get("/estados", h.listStates)
	mfg.Get("/ordenes", h.listOrders)
	mfg.Post("/ordenes", can(auth.CapManufacturingWrite), h.saveOrder)
	mfg.Put("/ordenes/:id", can(auth.CapManufacturingWrite), h.saveOrder)
	mfg.Delete("/ordenes/:id", can(auth.CapManufacturingWrite), h.deleteOrder)
	mfg.Get("/ordenes/:id/procesos", h.listOrderProcesses)
	mfg.Get("/procesos", h.listProcesses)
	mfg.Post("/procesos", can(auth.CapManufacturingWrite), h.createProcess)
	mfg.Post("/procesos/:id/estado", can(auth.CapManufacturingWrite), h.changeState)
	mfg.Get("/procesos/:id/historial", h.processHistory)

	protected.Get("/dashboard/stats", h.dashboardStats)

	docs := protected.Group("/documentos")
	docs.Post("/upload", can(auth.CapDocumentUpload), h.uploadDocument)
	docs.Get("/descargar/:id", h.downloadDocument)
	docs.Get("/:tipo/:id", h.listDocuments)
	docs.Delete("/:id", can(auth.CapDocumentDelete), h.deleteDocument)

	exports := protected.Group("/exports")
	exports.Get("/equipos.csv", h.exportEquipment)
	exports.Get("/plantas.csv", h.exportPlants)
	exports.Get("/ordenes-manufactura.csv", h.exportOrders)
}

func roleNames(c auth.Capability) []string {
	roles := auth.RequiredRoles(c)
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// requestID propaga el X-Request-ID del cliente o genera uno.
func requestID(c *fiber.Ctx) string {
	if id := c.Get("X-Request-ID"); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Set("X-Request-ID", id)
	return id
}
