// Package main runs the gymstats MCP server over stdio (for local MCP clients).
// The same MCP server is also mounted on the main backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/gymstats/achievements"
	gymstatsmcp "github.com/2beens/liftlog/internal/gymstats/mcp"
	"github.com/2beens/liftlog/internal/gymstats/sets"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
	"github.com/2beens/liftlog/internal/kvstore"
	"github.com/2beens/liftlog/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	var store kvstore.Store
	if cfg.UseRedisStore {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
			Password: os.Getenv("LIFTLOG_REDIS_PASS"),
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("close redis client: %s", err)
			}
		}()
		store = kvstore.NewRedisStore(rdb, "liftlog:")
	} else {
		log.Warnln("using in-memory kv store, unlocked achievements are lost on eviction or restart")
		store = kvstore.NewMemoryStore(cfg.MemoryStoreSizeMB)
	}

	// metrics are not scraped from the stdio process
	metricsManager := metrics.NewManager("liftlog", "mcp", prometheus.NewRegistry())

	setsService := sets.NewService(sets.NewRepo(dbPool), store, metricsManager)
	achievementsService := achievements.NewService(
		setsService,
		workouts.NewService(workouts.NewRepo(dbPool)),
		achievements.NewUnlockStore(store),
		metricsManager,
	)

	mcpServer := gymstatsmcp.NewServer(setsService, achievementsService, gymstatsmcp.Params{
		Version:          "stdio",
		HistorySize:      cfg.RecentSetsWindow,
		DefaultIncrement: cfg.DefaultWeightIncrement,
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatal(err)
	}
}
