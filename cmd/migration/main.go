package main

import (
	"os"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
)

// Applies schema migrations against the configured database and exits.
// database.New runs the same migration set, so this exists for applying
// schema changes ahead of a deploy.
func main() {
	log := logger.New("migrate")

	config, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Migrations complete", "dbPath", config.DatabaseDbPath)
}
