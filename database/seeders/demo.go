package seeders

import (
	"os"

	"kutla.link/configs/configslog"
	"kutla.link/models"
	"kutla.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDemoCard geliştirme ortamı için örnek bir kart ve iki katkı oluşturur.
// Production'da ya da tabloda kart varken hiçbir şey yapmaz.
func SeedDemoCard(db *gorm.DB) error {
	if os.Getenv("APP_ENV") == "production" {
		configslog.SLog.Info("Production ortamı, demo kart seed işlemi atlanıyor.")
		return nil
	}

	var count int64
	if err := db.Model(&models.Card{}).Count(&count).Error; err != nil {
		configslog.Log.Error("Kart sayısı kontrol edilemedi", zap.Error(err))
		return err
	}
	if count > 0 {
		configslog.SLog.Info("Kartlar zaten mevcut, demo kart seed işlemi atlanıyor.")
		return nil
	}

	shareKey, err := utils.GenerateSecureRandomString(20)
	if err != nil {
		return err
	}
	ownerToken, ownerTokenHash, err := utils.GenerateOwnerToken()
	if err != nil {
		return err
	}

	card := models.Card{
		Title:            "Ayşe'nin 5. Yıldönümü",
		Description:      "Aramıza katılışının 5. yılını kutluyoruz!",
		RecipientName:    "Ayşe Yılmaz",
		SenderName:       "Mühendislik Ekibi",
		CelebrationDate:  utils.MustParseDate("2026-09-15"),
		AnniversaryYears: 5,
		Department:       "Mühendislik",
		Status:           models.CardStatusCollecting,
		ShareKey:         shareKey,
		OwnerTokenHash:   ownerTokenHash,
	}
	if err := db.Create(&card).Error; err != nil {
		configslog.Log.Error("Demo kart oluşturulamadı", zap.Error(err))
		return err
	}

	contributions := []struct {
		name    string
		content string
	}{
		{"Mehmet Demir", "Nice yıllara! Seninle çalışmak bir zevk."},
		{"Zeynep Kaya", "5 yıl göz açıp kapayıncaya kadar geçti, tebrikler!"},
	}
	for _, contribution := range contributions {
		participation := models.Participation{
			CardID:          card.ID,
			ParticipantName: contribution.name,
			Status:          models.ParticipationStatusContributed,
		}
		if err := db.Create(&participation).Error; err != nil {
			return err
		}
		wish := models.Wish{
			Content:         contribution.content,
			CardID:          card.ID,
			ParticipationID: participation.ID,
		}
		if err := db.Create(&wish).Error; err != nil {
			return err
		}
	}

	configslog.SLog.Infof("Demo kart oluşturuldu: ID %d, ShareKey %s, OwnerToken %s", card.ID, card.ShareKey, ownerToken)
	return nil
}
