package handlers

import (
	"errors"

	"kutla.link/configs/configslog"
	"kutla.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PublicPageHandler public kutlama ve katkı sayfalarını yönetir.
// Sayfalara erişim kartın paylaşım anahtarı (:key) ile yapılır.
type PublicPageHandler struct {
	cardService services.ICardService
	wishService services.IWishService
}

// NewPublicPageHandler yeni bir PublicPageHandler örneği oluşturur.
func NewPublicPageHandler() *PublicPageHandler {
	return &PublicPageHandler{
		cardService: services.NewCardService(),
		wishService: services.NewWishService(),
	}
}

// Home GET / ana sayfayı gösterir.
func (h *PublicPageHandler) Home(c *fiber.Ctx) error {
	return c.Render("public/home", fiber.Map{
		"Title": "kutla.link",
	}, "layouts/main")
}

// Celebration GET /celebration/:key kutlama sayfasını gösterir.
// Kart ve tüm dilekler (katılımcı adlarıyla) render edilir.
func (h *PublicPageHandler) Celebration(c *fiber.Ctx) error {
	key := c.Params("key")
	if len(key) == 0 {
		return h.renderNotFound(c, "Geçersiz Bağlantı")
	}

	card, err := h.cardService.GetCardByKey(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return h.renderNotFound(c, "Kutlama Bulunamadı")
		}
		configslog.Log.Error("Celebration: GetCardByKey error", zap.String("key", key), zap.Error(err))
		return h.renderError(c, "Kutlama sayfası yüklenirken bir sorun oluştu.")
	}

	return c.Render("public/celebration", fiber.Map{
		"Title":  card.Title,
		"Card":   card,
		"Wishes": card.Wishes,
	}, "layouts/main")
}

// Contribute GET /contribute/:key katkı sayfasını gösterir.
// Kart tamamlandıysa form yerine kapanış mesajı render edilir.
func (h *PublicPageHandler) Contribute(c *fiber.Ctx) error {
	key := c.Params("key")
	if len(key) == 0 {
		return h.renderNotFound(c, "Geçersiz Bağlantı")
	}

	card, err := h.cardService.GetCardByKey(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return h.renderNotFound(c, "Kart Bulunamadı")
		}
		configslog.Log.Error("Contribute: GetCardByKey error", zap.String("key", key), zap.Error(err))
		return h.renderError(c, "Katkı sayfası yüklenirken bir sorun oluştu.")
	}

	return c.Render("public/contribute", fiber.Map{
		"Title":       "Dilek Bırak: " + card.Title,
		"Card":        card,
		"IsCompleted": card.IsCompleted(),
	}, "layouts/main")
}

// renderNotFound standart 404 sayfasını render eder.
func (h *PublicPageHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	}, "layouts/main")
}

// renderError standart 500 hata sayfasını render eder.
func (h *PublicPageHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": message,
	}, "layouts/main")
}
