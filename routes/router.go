package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Owner-Token",
	}))

	// --- Rota Grupları ---
	registerApiRoutes(app)    // /api rotaları
	registerPublicRoutes(app) // Public sayfalar

	// --- 404 Handler ---
	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

// notFoundHandler eşleşmeyen istekler için içerik tipine göre cevap döner.
func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "text/html":
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title":   "Sayfa Bulunamadı",
			"Message": "Aradığınız sayfa bulunamadı.",
		}, "layouts/main")
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "kaynak bulunamadı"})
	}
}
