package models

// ParticipationStatus bir katılımcının olası durumlarını tanımlar.
type ParticipationStatus string

const (
	ParticipationStatusInvited     ParticipationStatus = "invited"     // Davet edildi, henüz dilek yazmadı
	ParticipationStatusContributed ParticipationStatus = "contributed" // Dileğini gönderdi
)

// Participation bir karta adıyla katılan kişinin kaydıdır.
// Dilek silindiğinde durumu tekrar "invited" olarak sıfırlanır.
type Participation struct {
	BaseModel
	CardID           uint                `gorm:"not null;index" json:"cardId"`
	UserID           *uint               `gorm:"index" json:"userId,omitempty"` // Opsiyonel
	ParticipantName  string              `gorm:"type:varchar(150);not null" json:"participantName"`
	ParticipantEmail string              `gorm:"type:varchar(150);index" json:"participantEmail,omitempty"`
	Status           ParticipationStatus `gorm:"type:varchar(20);not null;default:'invited';index" json:"status"`

	// GORM İlişkileri
	Card *Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`
	Wish *Wish `gorm:"foreignKey:ParticipationID" json:"wish,omitempty"` // One-to-one
}
