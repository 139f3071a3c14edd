package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
	"github.com/urufarma/lims-web/internal/infrastructure/storage"
	"github.com/urufarma/lims-web/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName string
	Client  *limsapi.Client
	Cookie  storage.CookieOptions
	Reports TraceReporter
	Log     *logger.Logger
	Now     auth.Clock
}

// NewApp arma la app Fiber del cliente web con vistas, middlewares y rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		Views:        NewViews(),
		BodyLimit:    int(dto.MaxDocumentBytes) + 5<<20,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName, "backend": deps.Client.BaseURL()})
	})

	Router(app, deps)
	return app
}

// Router registra las páginas. Todo salvo /login exige sesión.
func Router(app *fiber.App, deps RouterDeps) {
	web := app.Group("/", SessionMiddleware(deps.Cookie, deps.Client, deps.Now))

	authHandler := NewAuthHandler(deps.Log)
	web.Get("/login", authHandler.LoginPage)
	web.Post("/login", authHandler.Login)
	web.Post("/logout", authHandler.Logout)

	protected := web.Group("/", RequireSession())

	protected.Get("/", NewDashboardHandler().Show)

	equipment := NewEquipmentHandler()
	protected.Get("/equipments", equipment.List)
	protected.Post("/equipments", equipment.Create)
	protected.Post("/equipments/:id", equipment.Update)
	protected.Post("/equipments/:id/delete", equipment.Delete)

	plants := NewPlantHandler()
	protected.Get("/plants", plants.List)
	protected.Post("/plants", plants.Create)
	protected.Post("/plants/:id", plants.Update)
	protected.Post("/plants/:id/delete", plants.Delete)

	samples := NewSampleHandler()
	protected.Get("/samples", samples.List)
	protected.Post("/samples", samples.Create)
	protected.Post("/samples/:id", samples.Update)
	protected.Post("/samples/:id/delete", samples.Delete)

	analysis := NewAnalysisHandler()
	protected.Get("/analysis", analysis.List)
	protected.Post("/analysis", analysis.Create)
	protected.Post("/analysis/:id", analysis.Update)
	protected.Post("/analysis/:id/delete", analysis.Delete)

	inventory := NewInventoryHandler()
	protected.Get("/inventory", inventory.List)
	protected.Post("/inventory/powders", inventory.CreatePowder)
	protected.Post("/inventory/powders/:id", inventory.UpdatePowder)
	protected.Post("/inventory/powders/:id/delete", inventory.DeletePowder)
	protected.Post("/inventory/media", inventory.SaveMedium)
	protected.Post("/inventory/media/:id", inventory.SaveMedium)

	mfg := NewManufacturingHandler(deps.Reports, deps.Log)
	protected.Get("/manufacturing", mfg.List)
	protected.Post("/manufacturing/orders", mfg.CreateOrder)
	protected.Get("/manufacturing/orders/:id", mfg.Trace)
	protected.Get("/manufacturing/orders/:id/trace.pdf", mfg.TracePDF)
	protected.Post("/manufacturing/orders/:id", mfg.UpdateOrder)
	protected.Post("/manufacturing/orders/:id/delete", mfg.DeleteOrder)
	protected.Post("/manufacturing/processes", mfg.CreateProcess)
	protected.Post("/manufacturing/processes/:id/state", mfg.ChangeState)

	docs := NewDocumentHandler()
	protected.Post("/documents", docs.Upload)
	protected.Get("/documents/:id/download", docs.Download)
	protected.Post("/documents/:id/delete", docs.Delete)
	protected.Get("/exports/:name", docs.Export)

	// rutas desconocidas vuelven al panel (o al login, vía RequireSession)
	protected.Use(func(c *fiber.Ctx) error {
		return c.Redirect("/")
	})
}

// RequestLogger registra método, ruta, status y latencia de cada request.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(limsapi.RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(limsapi.RequestIDHeader, reqID)
		err := c.Next()
		log.Info().
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("http")
		return err
	}
}
