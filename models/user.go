package models

// User opsiyonel kimlik kaydıdır. Akışın çalışması için zorunlu değildir;
// kartların ve katılımların çoğu anonim oluşturulur.
type User struct {
	BaseModel
	Name  string `gorm:"type:varchar(150);not null" json:"name"`
	Email string `gorm:"type:varchar(150);uniqueIndex" json:"email"`
}
