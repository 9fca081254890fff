package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kutla.link/configs"
	"kutla.link/configs/configslog"
	"kutla.link/models"
	"kutla.link/pkg/queryparams"
	"kutla.link/repositories"
	"kutla.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CardServiceError özel servis hataları.
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound       CardServiceError = "kart bulunamadı"
	ErrCardCreationFailed CardServiceError = "kart oluşturulamadı"
	ErrCardUpdateFailed   CardServiceError = "kart güncellenemedi"
	ErrCardDeletionFailed CardServiceError = "kart silinemedi"
	ErrCardForbidden      CardServiceError = "bu işlem için yetkiniz yok"
	ErrCardInvalidInput   CardServiceError = "geçersiz girdi verisi"
	ErrCardInvalidStatus  CardServiceError = "geçersiz kart durumu"
	ErrCardStatusLocked   CardServiceError = "tamamlanmış kart tekrar toplamaya alınamaz"
	ErrCardCompleted      CardServiceError = "kart tamamlandı, yeni katkı kabul edilmiyor"
	ErrCardKeyGeneration  CardServiceError = "kart için paylaşım anahtarı oluşturulamadı"
)

// Paylaşım anahtarı uzunluğu (modeldeki varchar(20) ile aynı olmalı).
const shareKeyLength = 20

// CreateCardInput yeni kart oluşturma girdisi.
type CreateCardInput struct {
	Title            string `json:"title" validate:"required,max=255"`
	Description      string `json:"description"`
	RecipientName    string `json:"recipientName" validate:"max=150"`
	SenderName       string `json:"senderName" validate:"max=150"`
	CelebrationDate  string `json:"celebrationDate" validate:"required"`
	AnniversaryYears int    `json:"anniversaryYears" validate:"min=0"`
	Department       string `json:"department" validate:"max=100"`
	CreatorID        *uint  `json:"creatorId"`
}

// UpdateCardInput kısmi kart güncelleme girdisi. Nil alanlar değiştirilmez.
type UpdateCardInput struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	RecipientName    *string `json:"recipientName"`
	SenderName       *string `json:"senderName"`
	CelebrationDate  *string `json:"celebrationDate"`
	AnniversaryYears *int    `json:"anniversaryYears"`
	Department       *string `json:"department"`
	Status           *string `json:"status"`
}

// ICardService kart işlemleri için arayüz.
type ICardService interface {
	// CreateCard kartı oluşturur; düz metin owner token yalnızca burada döner.
	CreateCard(ctx context.Context, input CreateCardInput) (*models.Card, string, error)
	GetCardByID(ctx context.Context, id uint) (*models.Card, error)
	GetCardByKey(ctx context.Context, key string) (*models.Card, error)
	GetAllCards(ctx context.Context, params queryparams.ListParams) ([]models.Card, error)
	GetAllCardsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetCardsByCreator(ctx context.Context, creatorID uint) ([]models.Card, error)
	UpdateCard(ctx context.Context, id uint, input UpdateCardInput) (*models.Card, error)
	DeleteCard(ctx context.Context, id uint) error
	// VerifyOwnerToken yönetim işlemleri için owner token'ı doğrular.
	VerifyOwnerToken(ctx context.Context, id uint, token string) (*models.Card, error)
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo              repositories.ICardRepository
	participationRepo repositories.IParticipationRepository
	wishRepo          repositories.IWishRepository
	userRepo          repositories.IUserRepository
	db                *gorm.DB
}

// NewCardService yeni bir CardService örneği oluşturur.
func NewCardService() ICardService {
	return NewCardServiceWithDB(configs.GetDB())
}

// NewCardServiceWithDB verilen bağlantı üzerinde çalışan bir servis döndürür.
// Testlerde in-memory veritabanı ile kullanılır.
func NewCardServiceWithDB(db *gorm.DB) ICardService {
	return &CardService{
		repo:              repositories.NewCardRepositoryTx(db),
		participationRepo: repositories.NewParticipationRepositoryTx(db),
		wishRepo:          repositories.NewWishRepositoryTx(db),
		userRepo:          repositories.NewUserRepositoryTx(db),
		db:                db,
	}
}

// CreateCard yeni bir kart, paylaşım anahtarı ve owner token'ı
// TEK BİR TRANSACTION içinde oluşturur. Owner token düz metin olarak
// yalnızca bu çağrının dönüşünde görülebilir; veritabanında hash saklanır.
func (s *CardService) CreateCard(ctx context.Context, input CreateCardInput) (*models.Card, string, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrCardInvalidInput, err)
	}

	celebrationDate, err := utils.ParseDate(input.CelebrationDate)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrCardInvalidInput, err)
	}

	// CreatorID verildiyse kullanıcı kaydı var olmalı.
	if input.CreatorID != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.CreatorID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, "", fmt.Errorf("%w: creatorId bilinmeyen bir kullanıcı", ErrCardInvalidInput)
			}
			return nil, "", err
		}
	}

	ownerToken, ownerTokenHash, err := utils.GenerateOwnerToken()
	if err != nil {
		configslog.Log.Error("Owner token üretilemedi", zap.Error(err))
		return nil, "", ErrCardCreationFailed
	}

	var createdCard *models.Card
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		cardRepoTx := repositories.NewCardRepositoryTx(tx)

		// Benzersiz paylaşım anahtarı üret; çakışma olursa yeniden dene.
		var shareKey string
		const maxKeyAttempts = 5
		for i := 0; i < maxKeyAttempts; i++ {
			keyAttempt, keyErr := utils.GenerateSecureRandomString(shareKeyLength)
			if keyErr != nil {
				return ErrCardKeyGeneration
			}
			exists, existsErr := cardRepoTx.KeyExists(ctx, keyAttempt)
			if existsErr != nil {
				return ErrCardKeyGeneration
			}
			if !exists {
				shareKey = keyAttempt
				break
			}
			configslog.SLog.Warnf("Paylaşım anahtarı çakışması, yeniden deneniyor: %s", keyAttempt)
		}
		if shareKey == "" {
			return ErrCardKeyGeneration
		}

		card := models.Card{
			Title:            input.Title,
			Description:      input.Description,
			RecipientName:    input.RecipientName,
			SenderName:       input.SenderName,
			CelebrationDate:  celebrationDate,
			AnniversaryYears: input.AnniversaryYears,
			Department:       input.Department,
			Status:           models.CardStatusCollecting,
			ShareKey:         shareKey,
			OwnerTokenHash:   ownerTokenHash,
			CreatorID:        input.CreatorID,
		}
		if err := cardRepoTx.Create(ctx, &card); err != nil {
			return ErrCardCreationFailed
		}
		createdCard = &card
		return nil
	})
	if txErr != nil {
		return nil, "", txErr
	}

	configslog.SLog.Infof("Kart oluşturuldu: ID %d, ShareKey %s", createdCard.ID, createdCard.ShareKey)
	return createdCard, ownerToken, nil
}

// GetCardByID kartı dilekleri (katılımlarıyla) ve katılımlarıyla birlikte getirir.
func (s *CardService) GetCardByID(ctx context.Context, id uint) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// GetCardByKey kartı public paylaşım anahtarına göre getirir.
func (s *CardService) GetCardByKey(ctx context.Context, key string) (*models.Card, error) {
	card, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// GetAllCards tüm kartları limitsiz getirir (en yeniler önce).
// Sayfalama istemeyen düz liste cevabı için kullanılır.
func (s *CardService) GetAllCards(ctx context.Context, params queryparams.ListParams) ([]models.Card, error) {
	params.Validate()
	cards, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

// GetAllCardsPaginated tüm kartları sayfalayarak getirir (en yeniler önce).
func (s *CardService) GetAllCardsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	cards, totalItems, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return &queryparams.PaginatedResult{
		Data: cards,
		Meta: params.CalculateMeta(totalItems),
	}, nil
}

// GetCardsByCreator bir kullanıcının oluşturduğu kartları getirir.
func (s *CardService) GetCardsByCreator(ctx context.Context, creatorID uint) ([]models.Card, error) {
	cards, err := s.repo.FindByCreatorID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

// UpdateCard kartın verilen alt kümesini günceller; nil alanlar değiştirilmez.
// Durum geçişi yalnızca collecting -> completed yönünde serbesttir.
func (s *CardService) UpdateCard(ctx context.Context, id uint, input UpdateCardInput) (*models.Card, error) {
	card, err := s.GetCardByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%w: başlık boş olamaz", ErrCardInvalidInput)
		}
		data["title"] = *input.Title
	}
	if input.Description != nil {
		data["description"] = *input.Description
	}
	if input.RecipientName != nil {
		data["recipient_name"] = *input.RecipientName
	}
	if input.SenderName != nil {
		data["sender_name"] = *input.SenderName
	}
	if input.CelebrationDate != nil {
		celebrationDate, parseErr := utils.ParseDate(*input.CelebrationDate)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrCardInvalidInput, parseErr)
		}
		data["celebration_date"] = celebrationDate
	}
	if input.AnniversaryYears != nil {
		if *input.AnniversaryYears < 0 {
			return nil, fmt.Errorf("%w: yıldönümü yılı negatif olamaz", ErrCardInvalidInput)
		}
		data["anniversary_years"] = *input.AnniversaryYears
	}
	if input.Department != nil {
		data["department"] = *input.Department
	}
	if input.Status != nil {
		newStatus := models.CardStatus(*input.Status)
		if newStatus != models.CardStatusCollecting && newStatus != models.CardStatusCompleted {
			return nil, ErrCardInvalidStatus
		}
		// Tamamlanan kart geri açılamaz.
		if card.IsCompleted() && newStatus == models.CardStatusCollecting {
			return nil, ErrCardStatusLocked
		}
		data["status"] = newStatus
	}

	if len(data) > 0 {
		data["updated_at"] = time.Now().UTC()
		if err := s.repo.Update(ctx, id, data); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrCardNotFound
			}
			configslog.Log.Error("UpdateCard error", zap.Uint("id", id), zap.Error(err))
			return nil, ErrCardUpdateFailed
		}
	}

	return s.GetCardByID(ctx, id)
}

// DeleteCard kartı ve tüm bağlı kayıtlarını TEK BİR TRANSACTION içinde siler.
// Silme sırası referans bütünlüğü için: dilekler -> katılımlar -> kart.
func (s *CardService) DeleteCard(ctx context.Context, id uint) error {
	card, err := s.GetCardByID(ctx, id)
	if err != nil {
		return err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		wishRepoTx := repositories.NewWishRepositoryTx(tx)
		participationRepoTx := repositories.NewParticipationRepositoryTx(tx)
		cardRepoTx := repositories.NewCardRepositoryTx(tx)

		if err := wishRepoTx.DeleteByCardID(ctx, card.ID); err != nil {
			return err
		}
		if err := participationRepoTx.DeleteByCardID(ctx, card.ID); err != nil {
			return err
		}
		return cardRepoTx.Delete(ctx, card)
	})
	if txErr != nil {
		configslog.Log.Error("DeleteCard transaction error", zap.Uint("id", id), zap.Error(txErr))
		return ErrCardDeletionFailed
	}

	configslog.SLog.Infof("Kart ve bağlı kayıtları silindi: ID %d", id)
	return nil
}

// VerifyOwnerToken yönetim işlemleri için owner token'ı doğrular.
// Token boşsa ya da eşleşmiyorsa ErrCardForbidden döner.
func (s *CardService) VerifyOwnerToken(ctx context.Context, id uint, token string) (*models.Card, error) {
	card, err := s.GetCardByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.CheckOwnerToken(card.OwnerTokenHash, token) {
		return nil, ErrCardForbidden
	}
	return card, nil
}

var _ ICardService = (*CardService)(nil)
