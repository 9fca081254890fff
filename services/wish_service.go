package services

import (
	"context"
	"errors"
	"fmt"

	"kutla.link/configs"
	"kutla.link/configs/configslog"
	"kutla.link/models"
	"kutla.link/repositories"
	"kutla.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WishServiceError özel servis hataları.
type WishServiceError string

func (e WishServiceError) Error() string { return string(e) }

const (
	ErrWishNotFound       WishServiceError = "dilek bulunamadı"
	ErrWishCreationFailed WishServiceError = "dilek oluşturulamadı"
	ErrWishUpdateFailed   WishServiceError = "dilek güncellenemedi"
	ErrWishDeletionFailed WishServiceError = "dilek silinemedi"
	ErrWishCardMismatch   WishServiceError = "dilek bu karta ait değil"
	ErrWishInvalidInput   WishServiceError = "geçersiz dilek verisi"
)

// ContributeInput "katkı" işleminin girdisi: katılım + dilek birlikte oluşturulur.
type ContributeInput struct {
	ParticipantName  string `json:"participantName" validate:"required,max=150"`
	ParticipantEmail string `json:"participantEmail" validate:"omitempty,email,max=150"`
	Content          string `json:"content" validate:"required"`
	UserID           *uint  `json:"userId"`
}

// IWishService dilek işlemleri için arayüz.
type IWishService interface {
	// CreateWish katılımı (status=contributed) ve dileği tek transaction'da oluşturur.
	CreateWish(ctx context.Context, cardID uint, input ContributeInput) (*models.Wish, error)
	GetWishesByCardID(ctx context.Context, cardID uint) ([]models.Wish, error)
	GetWishByID(ctx context.Context, id uint) (*models.Wish, error)
	UpdateWishContent(ctx context.Context, cardID uint, wishID uint, content string) (*models.Wish, error)
	// DeleteWish dileği siler ve bağlı katılımın durumunu "invited" yapar.
	DeleteWish(ctx context.Context, cardID uint, wishID uint) error
}

// WishService IWishService arayüzünü uygular.
type WishService struct {
	repo              repositories.IWishRepository
	participationRepo repositories.IParticipationRepository
	cardRepo          repositories.ICardRepository
	userRepo          repositories.IUserRepository
	db                *gorm.DB
}

// NewWishService yeni bir WishService örneği oluşturur.
func NewWishService() IWishService {
	return NewWishServiceWithDB(configs.GetDB())
}

// NewWishServiceWithDB verilen bağlantı üzerinde çalışan bir servis döndürür.
func NewWishServiceWithDB(db *gorm.DB) IWishService {
	return &WishService{
		repo:              repositories.NewWishRepositoryTx(db),
		participationRepo: repositories.NewParticipationRepositoryTx(db),
		cardRepo:          repositories.NewCardRepositoryTx(db),
		userRepo:          repositories.NewUserRepositoryTx(db),
		db:                db,
	}
}

// CreateWish bir karta katkı ekler: önce "contributed" durumunda katılım,
// ardından o katılıma bağlı dilek, TEK BİR TRANSACTION içinde oluşturulur.
// Kart yoksa ErrCardNotFound, toplama penceresi kapandıysa ErrCardCompleted döner.
func (s *WishService) CreateWish(ctx context.Context, cardID uint, input ContributeInput) (*models.Wish, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWishInvalidInput, err)
	}

	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if card.IsCompleted() {
		return nil, ErrCardCompleted
	}

	// UserID verildiyse kullanıcı kaydı var olmalı.
	if input.UserID != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.UserID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: userId bilinmeyen bir kullanıcı", ErrWishInvalidInput)
			}
			return nil, err
		}
	}

	var createdWish *models.Wish
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		participationRepoTx := repositories.NewParticipationRepositoryTx(tx)
		wishRepoTx := repositories.NewWishRepositoryTx(tx)

		participation := models.Participation{
			CardID:           card.ID,
			UserID:           input.UserID,
			ParticipantName:  input.ParticipantName,
			ParticipantEmail: input.ParticipantEmail,
			Status:           models.ParticipationStatusContributed,
		}
		if err := participationRepoTx.Create(ctx, &participation); err != nil {
			return err
		}

		wish := models.Wish{
			Content:         input.Content,
			CardID:          card.ID,
			ParticipationID: participation.ID,
		}
		if err := wishRepoTx.Create(ctx, &wish); err != nil {
			return err
		}

		wish.Participation = &participation
		createdWish = &wish
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("CreateWish transaction error", zap.Uint("cardID", cardID), zap.Error(txErr))
		return nil, ErrWishCreationFailed
	}

	return createdWish, nil
}

// GetWishesByCardID bir kartın dileklerini oluşturulma sırasına göre getirir.
func (s *WishService) GetWishesByCardID(ctx context.Context, cardID uint) ([]models.Wish, error) {
	wishes, err := s.repo.FindByCardID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if wishes == nil {
		wishes = []models.Wish{}
	}
	return wishes, nil
}

// GetWishByID dileği bağlı katılımıyla birlikte getirir.
func (s *WishService) GetWishByID(ctx context.Context, id uint) (*models.Wish, error) {
	wish, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrWishNotFound
		}
		return nil, err
	}
	return wish, nil
}

// findWishForCard dileği bulur ve verilen karta ait olduğunu doğrular.
// Kartlar arası erişim denemeleri ErrWishCardMismatch ile reddedilir.
func (s *WishService) findWishForCard(ctx context.Context, cardID uint, wishID uint) (*models.Wish, error) {
	wish, err := s.GetWishByID(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if wish.CardID != cardID {
		return nil, ErrWishCardMismatch
	}
	return wish, nil
}

// UpdateWishContent dilek içeriğini günceller.
func (s *WishService) UpdateWishContent(ctx context.Context, cardID uint, wishID uint, content string) (*models.Wish, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: içerik boş olamaz", ErrWishInvalidInput)
	}
	wish, err := s.findWishForCard(ctx, cardID, wishID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContent(ctx, wish.ID, content); err != nil {
		configslog.Log.Error("UpdateWishContent error", zap.Uint("wishID", wishID), zap.Error(err))
		return nil, ErrWishUpdateFailed
	}
	return s.GetWishByID(ctx, wish.ID)
}

// DeleteWish dileği siler ve bağlı katılımın durumunu "invited" olarak
// sıfırlar. İki adım TEK BİR TRANSACTION içinde çalışır.
func (s *WishService) DeleteWish(ctx context.Context, cardID uint, wishID uint) error {
	wish, err := s.findWishForCard(ctx, cardID, wishID)
	if err != nil {
		return err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		wishRepoTx := repositories.NewWishRepositoryTx(tx)
		participationRepoTx := repositories.NewParticipationRepositoryTx(tx)

		if err := wishRepoTx.Delete(ctx, wish); err != nil {
			return err
		}
		return participationRepoTx.UpdateStatus(ctx, wish.ParticipationID, models.ParticipationStatusInvited)
	})
	if txErr != nil {
		configslog.Log.Error("DeleteWish transaction error", zap.Uint("wishID", wishID), zap.Error(txErr))
		return ErrWishDeletionFailed
	}

	configslog.SLog.Infof("Dilek silindi ve katılım sıfırlandı: WishID %d, ParticipationID %d", wish.ID, wish.ParticipationID)
	return nil
}

var _ IWishService = (*WishService)(nil)
