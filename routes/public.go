package routes

import (
	public_handlers "kutla.link/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes kutlama ve katkı sayfalarının rotalarını tanımlar.
// Sayfalara kartın paylaşım anahtarı ile erişilir; anahtar tahmin edilemez.
func registerPublicRoutes(app *fiber.App) {
	publicHandler := public_handlers.NewPublicPageHandler()

	app.Get("/", publicHandler.Home)                     // GET /
	app.Get("/celebration/:key", publicHandler.Celebration) // GET /celebration/{key}
	app.Get("/contribute/:key", publicHandler.Contribute)   // GET /contribute/{key}
}
