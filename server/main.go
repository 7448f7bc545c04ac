// Command server hosts dijkstramap maps over HTTP: point, connection and
// grid mutation routes, recalculation, cost and direction queries, and
// PostgreSQL snapshots when a database is configured.
//
// Configuration comes from a YAML file (CONFIG_PATH, default
// ./config.yaml):
//
//	listen: ":3000"
//	log_level: info
//	database:
//	  url: postgres://localhost:5432/dijkstramap
package main

import (
	"context"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gologme/log"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skison/dijkstramap"
	"github.com/skison/dijkstramap/postgres"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.yaml"
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.New(os.Stdout, "", log.Flags())
	setLogLevel(cfg.LogLevel, logger)

	var store dijkstramap.Store
	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		store = postgres.New(pool)
		if err := store.CreateSchema(context.Background()); err != nil {
			logger.Fatalf("Failed to create schema: %v", err)
		}
		logger.Infoln("Snapshot store connected")
	}

	srv := &server{
		registry: newRegistry(),
		store:    store,
		log:      logger,
	}

	app := fiber.New()
	srv.routes(app)

	logger.Infof("Listening on %s", cfg.Listen)
	logger.Fatal(app.Listen(cfg.Listen))
}

// setLogLevel enables every level up to and including loglevel; unknown
// names fall back to info.
func setLogLevel(loglevel string, logger *log.Logger) {
	levels := [...]string{"error", "warn", "info", "debug", "trace"}
	loglevel = strings.ToLower(loglevel)

	known := false
	for _, level := range levels {
		if level == loglevel {
			known = true
		}
	}
	if !known {
		logger.Infoln("Loglevel parse failed. Set default level(info)")
		loglevel = "info"
	}

	for _, level := range levels {
		logger.EnableLevel(level)
		if level == loglevel {
			break
		}
	}
}
