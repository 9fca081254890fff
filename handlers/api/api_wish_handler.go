package handlers

import (
	"kutla.link/services"

	"github.com/gofiber/fiber/v2"
)

// ApiWishHandler dilek JSON endpoint'lerini yönetir.
type ApiWishHandler struct {
	service     services.IWishService
	cardService services.ICardService
}

// NewApiWishHandler yeni bir ApiWishHandler örneği oluşturur.
func NewApiWishHandler() *ApiWishHandler {
	return &ApiWishHandler{
		service:     services.NewWishService(),
		cardService: services.NewCardService(),
	}
}

// ListWishes GET /api/cards/:id/wishes
// Dilekler oluşturulma sırasına göre, bağlı katılımlarıyla döner.
func (h *ApiWishHandler) ListWishes(c *fiber.Ctx) error {
	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	wishes, err := h.service.GetWishesByCardID(c.UserContext(), cardID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wishes)
}

// CreateWish POST /api/cards/:id/wishes
// Katkı işlemi: katılım (contributed) ve dilek tek transaction'da oluşturulur.
func (h *ApiWishHandler) CreateWish(c *fiber.Ctx) error {
	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input services.ContributeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	wish, err := h.service.CreateWish(c.UserContext(), cardID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(wish)
}

// UpdateWish PATCH /api/cards/:id/wishes/:wishId
// Dilek içeriğini günceller. Owner token zorunludur.
func (h *ApiWishHandler) UpdateWish(c *fiber.Ctx) error {
	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	wishID, err := parseIDParam(c, "wishId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := h.cardService.VerifyOwnerToken(c.UserContext(), cardID, c.Get(ownerTokenHeader)); err != nil {
		return respondError(c, err)
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	wish, err := h.service.UpdateWishContent(c.UserContext(), cardID, wishID, input.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wish)
}

// DeleteWish DELETE /api/cards/:id/wishes/:wishId
// Dilek silinir ve bağlı katılım "invited" durumuna sıfırlanır.
// Dilek başka bir karta aitse 403, hiç yoksa 404 döner. Owner token zorunludur.
func (h *ApiWishHandler) DeleteWish(c *fiber.Ctx) error {
	cardID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	wishID, err := parseIDParam(c, "wishId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := h.cardService.VerifyOwnerToken(c.UserContext(), cardID, c.Get(ownerTokenHeader)); err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteWish(c.UserContext(), cardID, wishID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
