package handlers

import (
	"kutla.link/services"

	"github.com/gofiber/fiber/v2"
)

// ApiParticipationHandler katılım JSON endpoint'lerini yönetir.
type ApiParticipationHandler struct {
	service services.IParticipationService
}

// NewApiParticipationHandler yeni bir ApiParticipationHandler örneği oluşturur.
func NewApiParticipationHandler() *ApiParticipationHandler {
	return &ApiParticipationHandler{service: services.NewParticipationService()}
}

// ListParticipations GET /api/cards/:id/participations
// Katılımlar oluşturulma sırasına göre, varsa bağlı Wish ve User ile döner.
func (h *ApiParticipationHandler) ListParticipations(c *fiber.Ctx) error {
	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	participations, err := h.service.GetParticipationsByCardID(c.UserContext(), cardID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(participations)
}

// CreateParticipation POST /api/cards/:id/participations
// Dilek yazmadan önce açıkça davet edilen katılımcılar için kullanılır.
func (h *ApiParticipationHandler) CreateParticipation(c *fiber.Ctx) error {
	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input services.CreateParticipationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	participation, err := h.service.CreateParticipation(c.UserContext(), cardID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(participation)
}

// ListParticipationsByEmail GET /api/participations?email=...
// Bir katılımcının hangi kartlara katıldığını listeler.
func (h *ApiParticipationHandler) ListParticipationsByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email parametresi zorunludur"})
	}

	participations, err := h.service.FindParticipationsByEmail(c.UserContext(), email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(participations)
}
