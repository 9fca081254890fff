package services_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"kutla.link/configs/configslog"
	"kutla.link/database"
	"kutla.link/models"
	"kutla.link/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var initLoggerOnce sync.Once

// newTestDB her test için izole bir in-memory sqlite veritabanı açar
// ve şemayı gerçek migrasyon sırasıyla kurar.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	initLoggerOnce.Do(configslog.InitLogger)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, dbErr := db.DB()
		if dbErr == nil {
			_ = sqlDB.Close()
		}
	})

	if err := database.RunMigrationsInOrder(db); err != nil {
		t.Fatalf("test şeması kurulamadı: %v", err)
	}
	return db
}

// createTestCard testler için standart bir kart oluşturur ve kartla
// birlikte düz metin owner token'ı döndürür.
func createTestCard(t *testing.T, svc services.ICardService, title string) (*models.Card, string) {
	t.Helper()
	card, token, err := svc.CreateCard(context.Background(), services.CreateCardInput{
		Title:            title,
		Description:      "10 yılın anısına",
		RecipientName:    "Ayşe Yılmaz",
		SenderName:       "Takım Arkadaşları",
		CelebrationDate:  "2026-09-15",
		AnniversaryYears: 10,
		Department:       "Mühendislik",
	})
	if err != nil {
		t.Fatalf("test kartı oluşturulamadı: %v", err)
	}
	return card, token
}
