package main

import (
	"log"

	"github.com/iceymoss/wiki-fetcher/internal/conf"
	"github.com/iceymoss/wiki-fetcher/internal/seed"
	"github.com/iceymoss/wiki-fetcher/internal/server"
	"github.com/iceymoss/wiki-fetcher/pkg/db"
	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"
	"github.com/iceymoss/wiki-fetcher/pkg/logger"

	// import anonymously to register tasks to the list
	_ "github.com/iceymoss/wiki-fetcher/internal/tasks/housekeeping"
	_ "github.com/iceymoss/wiki-fetcher/internal/tasks/network"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ .env not loaded: %v", err)
	}

	cfg, err := conf.LoadConfig("configs/config.yaml")
	if err != nil {
		logger.Fatal("❌ LoadConfig error", zap.Error(err))
	}

	conn, err := db.Open(db.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		logger.Fatal("❌ Database error", zap.Error(err))
	}

	err = conn.AutoMigrate(
		&objects.Topic{},
		&objects.Content{},
		&objects.Download{},
		&objects.APIKey{},
		&objects.WikiContent{},
	)
	if err != nil {
		logger.Fatal("❌ AutoMigrate error", zap.Error(err))
	}

	if err := seed.Run(conn); err != nil {
		logger.Fatal("❌ Seed error", zap.Error(err))
	}

	srv := server.NewServer(cfg, conn)

	log.Printf("🌐 API running at http://localhost%s", cfg.Server.Port)
	if err := srv.Run(cfg.Server.Port); err != nil {
		logger.Fatal("❌ Server error", zap.Error(err))
	}
}
