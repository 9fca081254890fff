package models

// Wish bir katılımcının yazdığı tek dilek mesajıdır.
// Her dilek tam olarak bir Participation kaydına bağlıdır ve
// wish.CardID == participation.CardID olmak zorundadır.
type Wish struct {
	BaseModel
	Content         string `gorm:"type:text;not null" json:"content"`
	CardID          uint   `gorm:"not null;index" json:"cardId"`
	ParticipationID uint   `gorm:"uniqueIndex;not null" json:"participationId"`

	// GORM İlişkileri
	Card          *Card          `gorm:"foreignKey:CardID" json:"card,omitempty"`
	Participation *Participation `gorm:"foreignKey:ParticipationID" json:"participation,omitempty"`
}
