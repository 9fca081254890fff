package configsdatabase

import (
	"fmt"
	"os"
	"time"

	"kutla.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB PostgreSQL bağlantısını kurar ve bağlantı havuzunu ayarlar.
// DSN, DB_* ortam değişkenlerinden oluşturulur.
func InitDB() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "kutla"),
		getEnv("DB_SSLMODE", "disable"),
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB örneği alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		configslog.Log.Fatal("Veritabanı ping başarısız", zap.Error(err))
	}

	db = gormDB
	configslog.SLog.Info("Veritabanı bağlantısı başarıyla kuruldu")
}

// GetDB aktif GORM bağlantısını döndürür.
func GetDB() *gorm.DB {
	return db
}

// SetDB bağlantıyı dışarıdan atar. Testlerde in-memory veritabanı
// bağlamak için kullanılır.
func SetDB(gormDB *gorm.DB) {
	db = gormDB
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("sql.DB örneği alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
