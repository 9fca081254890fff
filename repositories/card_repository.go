package repositories

import (
	"context"
	"errors"

	"kutla.link/configs"
	"kutla.link/configs/configslog"
	"kutla.link/models"
	"kutla.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICardRepository kart veritabanı işlemleri için arayüz.
type ICardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	FindByID(ctx context.Context, id uint) (*models.Card, error)
	FindByKey(ctx context.Context, key string) (*models.Card, error)
	KeyExists(ctx context.Context, key string) (bool, error)
	FindAll(ctx context.Context, params queryparams.ListParams) ([]models.Card, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Card, int64, error)
	FindByCreatorID(ctx context.Context, creatorID uint) ([]models.Card, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
	Delete(ctx context.Context, card *models.Card) error
}

// CardRepository ICardRepository arayüzünü uygular.
type CardRepository struct {
	db *gorm.DB
}

// NewCardRepository yeni bir CardRepository örneği oluşturur.
func NewCardRepository() ICardRepository {
	return &CardRepository{db: configs.GetDB()}
}

// NewCardRepositoryTx transaction'a bağlı bir repository döndürür.
func NewCardRepositoryTx(tx *gorm.DB) ICardRepository {
	return &CardRepository{db: tx}
}

// Context ile çalışan DB örneği döndüren yardımcı fonksiyon.
func (r *CardRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni bir kart kaydı oluşturur.
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	if card == nil {
		return errors.New("oluşturulacak kart nil olamaz")
	}
	return r.getDB(ctx).Create(card).Error
}

// withAssociations kartın iç içe dönen ilişkilerini preload eder.
// Dilekler ve katılımlar oluşturulma sırasına göre (asc) döner.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Creator").
		Preload("Wishes", func(db *gorm.DB) *gorm.DB {
			return db.Order("wishes.created_at asc")
		}).
		Preload("Wishes.Participation").
		Preload("Participations", func(db *gorm.DB) *gorm.DB {
			return db.Order("participations.created_at asc")
		})
}

// FindByID kartı ilişkileriyle birlikte getirir.
func (r *CardRepository) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	if id == 0 {
		return nil, errors.New("geçersiz kart ID")
	}
	var card models.Card
	err := withAssociations(r.getDB(ctx)).First(&card, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CardRepository.FindByID error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// FindByKey kartı public share anahtarına göre getirir.
func (r *CardRepository) FindByKey(ctx context.Context, key string) (*models.Card, error) {
	if key == "" {
		return nil, errors.New("geçersiz anahtar")
	}
	var card models.Card
	err := withAssociations(r.getDB(ctx)).Where("share_key = ?", key).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CardRepository.FindByKey error", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// KeyExists verilen share anahtarının kullanımda olup olmadığını kontrol eder.
func (r *CardRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Card{}).Where("share_key = ?", key).Count(&count).Error
	if err != nil {
		configslog.Log.Error("CardRepository.KeyExists error", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// allowedCardSortColumns sıralamada kullanılabilecek sütunlar.
var allowedCardSortColumns = map[string]bool{
	"created_at":       true,
	"celebration_date": true,
	"title":            true,
}

// FindAll tüm kartları limitsiz getirir (varsayılan: en yeniler önce).
func (r *CardRepository) FindAll(ctx context.Context, params queryparams.ListParams) ([]models.Card, error) {
	sortBy := params.SortBy
	if !allowedCardSortColumns[sortBy] {
		sortBy = "created_at"
	}

	var cards []models.Card
	err := withAssociations(r.getDB(ctx)).
		Order(sortBy + " " + params.OrderBy).
		Find(&cards).Error
	if err != nil {
		configslog.Log.Error("CardRepository.FindAll error", zap.Error(err))
		return nil, err
	}
	return cards, nil
}

// FindAllPaginated tüm kartları sayfalayarak getirir (varsayılan: en yeniler önce).
func (r *CardRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Card, int64, error) {
	db := r.getDB(ctx)

	var totalItems int64
	if err := db.Model(&models.Card{}).Count(&totalItems).Error; err != nil {
		configslog.Log.Error("CardRepository.FindAllPaginated count error", zap.Error(err))
		return nil, 0, err
	}

	sortBy := params.SortBy
	if !allowedCardSortColumns[sortBy] {
		sortBy = "created_at"
	}

	var cards []models.Card
	err := withAssociations(db).
		Order(sortBy + " " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&cards).Error
	if err != nil {
		configslog.Log.Error("CardRepository.FindAllPaginated error", zap.Error(err))
		return nil, 0, err
	}
	return cards, totalItems, nil
}

// FindByCreatorID bir kullanıcının oluşturduğu kartları getirir (en yeniler önce).
func (r *CardRepository) FindByCreatorID(ctx context.Context, creatorID uint) ([]models.Card, error) {
	if creatorID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	var cards []models.Card
	err := r.getDB(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at desc").
		Find(&cards).Error
	if err != nil {
		configslog.Log.Error("CardRepository.FindByCreatorID error", zap.Uint("creatorID", creatorID), zap.Error(err))
		return nil, err
	}
	return cards, nil
}

// Update kartın verilen alanlarını günceller. Haritada olmayan alanlara dokunulmaz.
func (r *CardRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return errors.New("geçersiz kart ID")
	}
	if len(data) == 0 {
		return nil
	}
	result := r.getDB(ctx).Model(&models.Card{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		configslog.Log.Error("CardRepository.Update error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete kartı siler (soft delete). İlişkili kayıtların temizliği
// servis katmanındaki transaction içinde yapılır.
func (r *CardRepository) Delete(ctx context.Context, card *models.Card) error {
	if card == nil || card.ID == 0 {
		return errors.New("geçersiz kart")
	}
	result := r.getDB(ctx).Delete(card)
	if result.Error != nil {
		configslog.Log.Error("CardRepository.Delete error", zap.Uint("id", card.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ICardRepository = (*CardRepository)(nil)
