package http

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the fiber application with every route registered. metrics
// may be nil; collectors register globally so only one instance can exist per
// process.
func NewApp(h *Handler, metrics *fiberprometheus.FiberPrometheus) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "portfolio-site",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())

	if metrics != nil {
		metrics.RegisterAt(app, "/metrics")
		app.Use(metrics.Middleware)
	}

	app.Get("/healthz", h.Health)

	app.Use(OptionalAuth(h.jwtAuth))

	app.Get("/", h.Page)
	app.Get("/assets/style.css", h.Stylesheet)
	app.Get("/blocks/:slug", h.Block)

	api := app.Group("/api")
	api.Post("/users/login", h.Login)
	api.Post("/seed", RequireAuth(), h.Seed)

	exports := api.Group("/exports", RequireAuth())
	exports.Post("/", h.StartExport)
	exports.Get("/:id", h.GetExport)
	exports.Get("/:id/pdf", h.DownloadExport)

	api.Get("/:collection", h.ListCollection)
	api.Get("/:collection/:id", h.GetDocument)
	api.Post("/:collection", h.CreateDocument)
	api.Patch("/:collection/:id", h.UpdateDocument)
	api.Delete("/:collection/:id", h.DeleteDocument)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}
	return writeError(c, err)
}
