package migrations

import (
	"kutla.link/configs/configslog"
	"kutla.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateParticipationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating participations table...")
	err := db.AutoMigrate(&models.Participation{})
	if err != nil {
		configslog.Log.Error("Failed to migrate participations table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Participations table migrated successfully")
	return nil
}
