package main

import (
	"kutla.link/configs"
	"kutla.link/configs/configsdatabase"
	"kutla.link/configs/configslog"
	"kutla.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		AppName: "kutla.link",
		Views:   engine,
	})

	routes.SetupRoutes(app)

	port := configs.GetEnv("SERVER_PORT", "3000")
	configslog.SLog.Infof("Sunucu %s portunda başlatılıyor...", port)
	if err := app.Listen(":" + port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
