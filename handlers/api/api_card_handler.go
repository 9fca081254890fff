package handlers

import (
	"strconv"

	"kutla.link/configs/configslog"
	"kutla.link/models"
	"kutla.link/pkg/queryparams"
	"kutla.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Yönetim işlemlerinde owner token'ın beklendiği header.
const ownerTokenHeader = "X-Owner-Token"

// ApiCardHandler kart JSON endpoint'lerini yönetir.
type ApiCardHandler struct {
	service services.ICardService
}

// NewApiCardHandler yeni bir ApiCardHandler örneği oluşturur.
func NewApiCardHandler() *ApiCardHandler {
	return &ApiCardHandler{service: services.NewCardService()}
}

// createCardResponse oluşturma cevabına düz metin owner token'ı ekler.
// Token yalnızca bu cevapta görünür; sonraki isteklerde header ile gönderilir.
type createCardResponse struct {
	models.Card
	OwnerToken string `json:"ownerToken"`
}

// ListCards GET /api/cards
// Varsayılan olarak tüm kartları (en yeniler önce) düz liste döner.
// page/per_page verilirse sayfalanmış sonuç, creator_id verilirse
// o kullanıcının kartları döner.
func (h *ApiCardHandler) ListCards(c *fiber.Ctx) error {
	if creatorIDStr := c.Query("creator_id"); creatorIDStr != "" {
		creatorID, err := strconv.ParseUint(creatorIDStr, 10, 32)
		if err != nil || creatorID == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz creator_id parametresi"})
		}
		cards, err := h.service.GetCardsByCreator(c.UserContext(), uint(creatorID))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cards)
	}

	paginated := c.Query("page") != "" || c.Query("per_page") != ""

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("ListCards: query parse error", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}

	// Sayfalama istenmediyse tüm kartlar limitsiz döner.
	if !paginated {
		cards, err := h.service.GetAllCards(c.UserContext(), params)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cards)
	}

	result, err := h.service.GetAllCardsPaginated(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// CreateCard POST /api/cards
func (h *ApiCardHandler) CreateCard(c *fiber.Ctx) error {
	var input services.CreateCardInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	card, ownerToken, err := h.service.CreateCard(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(createCardResponse{
		Card:       *card,
		OwnerToken: ownerToken,
	})
}

// GetCard GET /api/cards/:id
func (h *ApiCardHandler) GetCard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	card, err := h.service.GetCardByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(card)
}

// UpdateCard PATCH /api/cards/:id
// Gönderilen alt küme uygulanır; eksik alanlar değiştirilmez.
// Owner token zorunludur.
func (h *ApiCardHandler) UpdateCard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := h.service.VerifyOwnerToken(c.UserContext(), id, c.Get(ownerTokenHeader)); err != nil {
		return respondError(c, err)
	}

	var input services.UpdateCardInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	card, err := h.service.UpdateCard(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(card)
}

// DeleteCard DELETE /api/cards/:id/delete
// Dilekler -> katılımlar -> kart sırasıyla tek transaction'da silinir.
// Owner token zorunludur.
func (h *ApiCardHandler) DeleteCard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := h.service.VerifyOwnerToken(c.UserContext(), id, c.Get(ownerTokenHeader)); err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteCard(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
