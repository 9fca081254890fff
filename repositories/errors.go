package repositories

import "errors"

// ErrNotFound kayıt bulunamadığında tüm repository'lerin döndürdüğü ortak hata.
// gorm.ErrRecordNotFound dışarı sızdırılmaz.
var ErrNotFound = errors.New("kayıt bulunamadı")
