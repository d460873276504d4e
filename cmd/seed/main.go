package main

import (
	"context"
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	"countyapi/config"
	"countyapi/internal/db"
	"countyapi/internal/xmlitems"
)

func main() {
	path := flag.String("file", "items.xml", "XML file with <Items><Item>... entries")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	body, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("read %s failed: %v", *path, err)
	}
	items, err := xmlitems.Parse(body)
	if err != nil {
		log.Fatalf("parse %s failed: %v", *path, err)
	}

	gormDB, err := db.NewDB(cfg.DBDriver, cfg.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	gw := db.NewGateway(gormDB, cfg.DBTimeout)
	defer gw.Close()

	n, err := db.SeedItems(context.Background(), gw, items)
	if err != nil {
		log.Fatalf("seed items failed: %v", err)
	}

	log.WithField("count", n).Info("items seeded")
}
