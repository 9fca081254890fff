package services

import (
	"context"
	"errors"
	"fmt"

	"kutla.link/configs"
	"kutla.link/models"
	"kutla.link/repositories"
	"kutla.link/utils"

	"gorm.io/gorm"
)

// ParticipationServiceError özel servis hataları.
type ParticipationServiceError string

func (e ParticipationServiceError) Error() string { return string(e) }

const (
	ErrParticipationNotFound       ParticipationServiceError = "katılım bulunamadı"
	ErrParticipationCreationFailed ParticipationServiceError = "katılım oluşturulamadı"
	ErrParticipationInvalidInput   ParticipationServiceError = "geçersiz katılım verisi"
)

// CreateParticipationInput yeni katılım oluşturma girdisi.
type CreateParticipationInput struct {
	ParticipantName  string `json:"participantName" validate:"required,max=150"`
	ParticipantEmail string `json:"participantEmail" validate:"omitempty,email,max=150"`
	UserID           *uint  `json:"userId"`
	Status           string `json:"status" validate:"omitempty,oneof=invited contributed"`
}

// IParticipationService katılım işlemleri için arayüz.
type IParticipationService interface {
	CreateParticipation(ctx context.Context, cardID uint, input CreateParticipationInput) (*models.Participation, error)
	GetParticipationsByCardID(ctx context.Context, cardID uint) ([]models.Participation, error)
	FindParticipationsByEmail(ctx context.Context, email string) ([]models.Participation, error)
}

// ParticipationService IParticipationService arayüzünü uygular.
type ParticipationService struct {
	repo     repositories.IParticipationRepository
	cardRepo repositories.ICardRepository
	userRepo repositories.IUserRepository
	db       *gorm.DB
}

// NewParticipationService yeni bir ParticipationService örneği oluşturur.
func NewParticipationService() IParticipationService {
	return NewParticipationServiceWithDB(configs.GetDB())
}

// NewParticipationServiceWithDB verilen bağlantı üzerinde çalışan bir servis döndürür.
func NewParticipationServiceWithDB(db *gorm.DB) IParticipationService {
	return &ParticipationService{
		repo:     repositories.NewParticipationRepositoryTx(db),
		cardRepo: repositories.NewCardRepositoryTx(db),
		userRepo: repositories.NewUserRepositoryTx(db),
		db:       db,
	}
}

// CreateParticipation bir karta yeni katılımcı ekler.
// Kart yoksa ErrCardNotFound, toplama penceresi kapandıysa ErrCardCompleted döner.
func (s *ParticipationService) CreateParticipation(ctx context.Context, cardID uint, input CreateParticipationInput) (*models.Participation, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParticipationInvalidInput, err)
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
				return nil, fmt.Errorf("%w: userId bilinmeyen bir kullanıcı", ErrParticipationInvalidInput)
			}
			return nil, err
		}
	}

	status := models.ParticipationStatus(input.Status)
	if status == "" {
		status = models.ParticipationStatusInvited
	}

	participation := models.Participation{
		CardID:           card.ID,
		UserID:           input.UserID,
		ParticipantName:  input.ParticipantName,
		ParticipantEmail: input.ParticipantEmail,
		Status:           status,
	}
	if err := s.repo.Create(ctx, &participation); err != nil {
		return nil, ErrParticipationCreationFailed
	}
	return &participation, nil
}

// GetParticipationsByCardID bir kartın katılımlarını oluşturulma sırasına göre getirir.
func (s *ParticipationService) GetParticipationsByCardID(ctx context.Context, cardID uint) ([]models.Participation, error) {
	participations, err := s.repo.FindByCardID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if participations == nil {
		participations = []models.Participation{}
	}
	return participations, nil
}

// FindParticipationsByEmail bir e-posta adresinin katıldığı kayıtları getirir.
func (s *ParticipationService) FindParticipationsByEmail(ctx context.Context, email string) ([]models.Participation, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: e-posta zorunludur", ErrParticipationInvalidInput)
	}
	participations, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if participations == nil {
		participations = []models.Participation{}
	}
	return participations, nil
}

var _ IParticipationService = (*ParticipationService)(nil)
