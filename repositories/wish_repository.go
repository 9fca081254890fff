package repositories

import (
	"context"
	"errors"

	"kutla.link/configs"
	"kutla.link/configs/configslog"
	"kutla.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IWishRepository dilek veritabanı işlemleri için arayüz.
type IWishRepository interface {
	Create(ctx context.Context, wish *models.Wish) error
	FindByID(ctx context.Context, id uint) (*models.Wish, error)
	FindByCardID(ctx context.Context, cardID uint) ([]models.Wish, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, wish *models.Wish) error
	DeleteByCardID(ctx context.Context, cardID uint) error
}

// WishRepository IWishRepository arayüzünü uygular.
type WishRepository struct {
	db *gorm.DB
}

// NewWishRepository yeni bir WishRepository örneği oluşturur.
func NewWishRepository() IWishRepository {
	return &WishRepository{db: configs.GetDB()}
}

// NewWishRepositoryTx transaction'a bağlı bir repository döndürür.
func NewWishRepositoryTx(tx *gorm.DB) IWishRepository {
	return &WishRepository{db: tx}
}

func (r *WishRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni bir dilek kaydı oluşturur.
func (r *WishRepository) Create(ctx context.Context, wish *models.Wish) error {
	if wish == nil {
		return errors.New("oluşturulacak dilek nil olamaz")
	}
	return r.getDB(ctx).Create(wish).Error
}

// FindByID dileği bağlı katılımıyla birlikte getirir.
func (r *WishRepository) FindByID(ctx context.Context, id uint) (*models.Wish, error) {
	if id == 0 {
		return nil, errors.New("geçersiz dilek ID")
	}
	var wish models.Wish
	err := r.getDB(ctx).Preload("Participation").First(&wish, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("WishRepository.FindByID error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &wish, nil
}

// FindByCardID bir kartın tüm dileklerini oluşturulma sırasına göre getirir.
func (r *WishRepository) FindByCardID(ctx context.Context, cardID uint) ([]models.Wish, error) {
	if cardID == 0 {
		return nil, errors.New("geçersiz kart ID")
	}
	var wishes []models.Wish
	err := r.getDB(ctx).
		Where("card_id = ?", cardID).
		Preload("Participation").
		Order("created_at asc").
		Find(&wishes).Error
	if err != nil {
		configslog.Log.Error("WishRepository.FindByCardID error", zap.Uint("cardID", cardID), zap.Error(err))
		return nil, err
	}
	return wishes, nil
}

// UpdateContent dilek içeriğini günceller.
func (r *WishRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	if id == 0 {
		return errors.New("geçersiz dilek ID")
	}
	result := r.getDB(ctx).Model(&models.Wish{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		configslog.Log.Error("WishRepository.UpdateContent error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete dileği siler (soft delete).
func (r *WishRepository) Delete(ctx context.Context, wish *models.Wish) error {
	if wish == nil || wish.ID == 0 {
		return errors.New("geçersiz dilek")
	}
	result := r.getDB(ctx).Delete(wish)
	if result.Error != nil {
		configslog.Log.Error("WishRepository.Delete error", zap.Uint("id", wish.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByCardID bir kartın tüm dileklerini siler (soft delete).
// Kart silme transaction'ı içinden çağrılır.
func (r *WishRepository) DeleteByCardID(ctx context.Context, cardID uint) error {
	if cardID == 0 {
		return errors.New("geçersiz kart ID")
	}
	return r.getDB(ctx).Where("card_id = ?", cardID).Delete(&models.Wish{}).Error
}

var _ IWishRepository = (*WishRepository)(nil)
