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

// IParticipationRepository katılım veritabanı işlemleri için arayüz.
type IParticipationRepository interface {
	Create(ctx context.Context, participation *models.Participation) error
	FindByID(ctx context.Context, id uint) (*models.Participation, error)
	FindByCardID(ctx context.Context, cardID uint) ([]models.Participation, error)
	FindByEmail(ctx context.Context, email string) ([]models.Participation, error)
	UpdateStatus(ctx context.Context, id uint, status models.ParticipationStatus) error
	DeleteByCardID(ctx context.Context, cardID uint) error
}

// ParticipationRepository IParticipationRepository arayüzünü uygular.
type ParticipationRepository struct {
	db *gorm.DB
}

// NewParticipationRepository yeni bir ParticipationRepository örneği oluşturur.
func NewParticipationRepository() IParticipationRepository {
	return &ParticipationRepository{db: configs.GetDB()}
}

// NewParticipationRepositoryTx transaction'a bağlı bir repository döndürür.
func NewParticipationRepositoryTx(tx *gorm.DB) IParticipationRepository {
	return &ParticipationRepository{db: tx}
}

func (r *ParticipationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni bir katılım kaydı oluşturur.
func (r *ParticipationRepository) Create(ctx context.Context, participation *models.Participation) error {
	if participation == nil {
		return errors.New("oluşturulacak katılım nil olamaz")
	}
	return r.getDB(ctx).Create(participation).Error
}

// FindByID katılımı getirir.
func (r *ParticipationRepository) FindByID(ctx context.Context, id uint) (*models.Participation, error) {
	if id == 0 {
		return nil, errors.New("geçersiz katılım ID")
	}
	var participation models.Participation
	err := r.getDB(ctx).First(&participation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ParticipationRepository.FindByID error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &participation, nil
}

// FindByCardID bir kartın tüm katılımlarını oluşturulma sırasına göre getirir.
// Varsa bağlı Wish ve User kayıtları da yüklenir.
func (r *ParticipationRepository) FindByCardID(ctx context.Context, cardID uint) ([]models.Participation, error) {
	if cardID == 0 {
		return nil, errors.New("geçersiz kart ID")
	}
	var participations []models.Participation
	err := r.getDB(ctx).
		Where("card_id = ?", cardID).
		Preload("Wish").
		Preload("User").
		Order("created_at asc").
		Find(&participations).Error
	if err != nil {
		configslog.Log.Error("ParticipationRepository.FindByCardID error", zap.Uint("cardID", cardID), zap.Error(err))
		return nil, err
	}
	return participations, nil
}

// FindByEmail bir e-posta adresinin tüm katılımlarını getirir.
// Katılımcının hangi kartlara katıldığını listelemek için kullanılır.
func (r *ParticipationRepository) FindByEmail(ctx context.Context, email string) ([]models.Participation, error) {
	if email == "" {
		return nil, errors.New("geçersiz e-posta")
	}
	var participations []models.Participation
	err := r.getDB(ctx).
		Where("participant_email = ?", email).
		Preload("Card").
		Preload("Wish").
		Order("created_at asc").
		Find(&participations).Error
	if err != nil {
		configslog.Log.Error("ParticipationRepository.FindByEmail error", zap.Error(err))
		return nil, err
	}
	return participations, nil
}

// UpdateStatus katılım durumunu günceller.
func (r *ParticipationRepository) UpdateStatus(ctx context.Context, id uint, status models.ParticipationStatus) error {
	if id == 0 {
		return errors.New("geçersiz katılım ID")
	}
	result := r.getDB(ctx).Model(&models.Participation{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("ParticipationRepository.UpdateStatus error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByCardID bir kartın tüm katılımlarını siler (soft delete).
// Kart silme transaction'ı içinden çağrılır.
func (r *ParticipationRepository) DeleteByCardID(ctx context.Context, cardID uint) error {
	if cardID == 0 {
		return errors.New("geçersiz kart ID")
	}
	return r.getDB(ctx).Where("card_id = ?", cardID).Delete(&models.Participation{}).Error
}

var _ IParticipationRepository = (*ParticipationRepository)(nil)
