package handlers

import (
	"errors"

	"kutla.link/configs/configslog"
	"kutla.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError servis hatasını HTTP durum koduna çevirir.
// Bilinmeyen hatalar loglanır ve istemciye genel bir 500 mesajı döner.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrWishNotFound),
		errors.Is(err, services.ErrParticipationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, services.ErrCardForbidden),
		errors.Is(err, services.ErrWishCardMismatch):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, services.ErrCardInvalidInput),
		errors.Is(err, services.ErrCardInvalidStatus),
		errors.Is(err, services.ErrCardStatusLocked),
		errors.Is(err, services.ErrCardCompleted),
		errors.Is(err, services.ErrParticipationInvalidInput),
		errors.Is(err, services.ErrWishInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})

	default:
		configslog.Log.Error("API: beklenmeyen hata",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}
}

// parseIDParam path'teki ID parametresini uint olarak okur.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.New("geçersiz " + name + " parametresi")
	}
	return uint(id), nil
}
