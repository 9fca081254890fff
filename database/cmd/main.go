package main

import (
	"flag"

	"kutla.link/configs"
	"kutla.link/configs/configsdatabase"
	"kutla.link/configs/configslog"
	"kutla.link/database"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Veritabanı migrasyonlarını çalıştır")
	seedFlag := flag.Bool("seed", false, "Seeder'ları çalıştır")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	db := configsdatabase.GetDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	database.Initialize(db, *migrateFlag, *seedFlag)
	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
