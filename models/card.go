package models

import "time"

// CardStatus bir kartın toplama penceresinin durumunu tanımlar.
type CardStatus string

const (
	CardStatusCollecting CardStatus = "collecting" // Dilekler toplanıyor
	CardStatusCompleted  CardStatus = "completed"  // Kutlama sayfası yayınlandı
)

// Card bir iş yıldönümü kutlama kampanyasının ana kaydıdır.
// Public erişim ShareKey üzerinden, yönetim işlemleri ise karta özel
// owner token ile yapılır (token düz metin olarak saklanmaz).
type Card struct {
	BaseModel
	Title            string     `gorm:"type:varchar(255);not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	RecipientName    string     `gorm:"type:varchar(150)" json:"recipientName"`
	SenderName       string     `gorm:"type:varchar(150)" json:"senderName"`
	CelebrationDate  time.Time  `gorm:"index;not null" json:"celebrationDate"`
	AnniversaryYears int        `gorm:"default:0" json:"anniversaryYears"`
	Department       string     `gorm:"type:varchar(100)" json:"department"`
	Status           CardStatus `gorm:"type:varchar(20);not null;default:'collecting';index" json:"status"`

	ShareKey       string `gorm:"type:varchar(20);uniqueIndex;not null" json:"shareKey"`
	OwnerTokenHash string `gorm:"type:varchar(255);not null" json:"-"`

	CreatorID *uint `gorm:"index" json:"creatorId,omitempty"` // Opsiyonel; çoğu kart anonim oluşturulur
	Creator   *User `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"creator,omitempty"`

	// GORM İlişkileri
	Wishes         []Wish          `gorm:"foreignKey:CardID" json:"wishes,omitempty"`
	Participations []Participation `gorm:"foreignKey:CardID" json:"participations,omitempty"`
}

// IsCompleted toplama penceresinin kapanıp kapanmadığını döndürür.
func (c *Card) IsCompleted() bool {
	return c.Status == CardStatusCompleted
}
