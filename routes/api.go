package routes

import (
	api_handlers "kutla.link/handlers/api"

	"github.com/gofiber/fiber/v2"
)

// registerApiRoutes /api altındaki JSON endpoint'lerini tanımlar.
func registerApiRoutes(app *fiber.App) {
	cardHandler := api_handlers.NewApiCardHandler()
	participationHandler := api_handlers.NewApiParticipationHandler()
	wishHandler := api_handlers.NewApiWishHandler()

	api := app.Group("/api")

	// --- Kartlar ---
	api.Get("/cards", cardHandler.ListCards)                // GET /api/cards
	api.Post("/cards", cardHandler.CreateCard)              // POST /api/cards
	api.Get("/cards/:id", cardHandler.GetCard)              // GET /api/cards/{id}
	api.Patch("/cards/:id", cardHandler.UpdateCard)         // PATCH /api/cards/{id}
	api.Delete("/cards/:id/delete", cardHandler.DeleteCard) // DELETE /api/cards/{id}/delete

	// --- Katılımlar ---
	api.Get("/cards/:id/participations", participationHandler.ListParticipations)   // GET /api/cards/{id}/participations
	api.Post("/cards/:id/participations", participationHandler.CreateParticipation) // POST /api/cards/{id}/participations
	api.Get("/participations", participationHandler.ListParticipationsByEmail)      // GET /api/participations?email=...

	// --- Dilekler ---
	api.Get("/cards/:id/wishes", wishHandler.ListWishes)                // GET /api/cards/{id}/wishes
	api.Post("/cards/:id/wishes", wishHandler.CreateWish)               // POST /api/cards/{id}/wishes
	api.Patch("/cards/:id/wishes/:wishId", wishHandler.UpdateWish)      // PATCH /api/cards/{id}/wishes/{wishId}
	api.Delete("/cards/:id/wishes/:wishId", wishHandler.DeleteWish)     // DELETE /api/cards/{id}/wishes/{wishId}
}
