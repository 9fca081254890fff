package configs

import (
	"os"
	"strconv"

	"kutla.link/configs/configsdatabase"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// LoadEnv .env dosyasını yükler. Dosya yoksa sessizce devam edilir
// (production ortamında değişkenler dışarıdan verilir).
func LoadEnv() {
	_ = godotenv.Load()
}

// GetDB aktif veritabanı bağlantısını döndürür (configsdatabase üzerinden).
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// GetEnv bir ortam değişkenini okur, yoksa fallback döner.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt bir ortam değişkenini int olarak okur.
func GetEnvAsInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
