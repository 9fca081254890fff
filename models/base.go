package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel tüm tablolarda ortak olan alanları içerir.
// Soft delete kullanılır; silinen kayıtlar sorgulara dahil edilmez.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
