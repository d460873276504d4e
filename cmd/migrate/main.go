package main

import (
	log "github.com/sirupsen/logrus"

	"countyapi/config"
	"countyapi/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// NewDB сам создаёт недостающие таблицы
	gormDB, err := db.NewDB(cfg.DBDriver, cfg.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := db.NewGateway(gormDB, cfg.DBTimeout).Close(); err != nil {
		log.Warnf("db close failed: %v", err)
	}

	log.Println("migration completed")
}
