package migrations

import (
	"kutla.link/configs/configslog"
	"kutla.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateWishesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating wishes table...")
	err := db.AutoMigrate(&models.Wish{})
	if err != nil {
		configslog.Log.Error("Failed to migrate wishes table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Wishes table migrated successfully")
	return nil
}
