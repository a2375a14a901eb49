package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/katzenj/goodreads-analytics/lib/configutil"
	"github.com/katzenj/goodreads-analytics/lib/serviceutil"
	"github.com/katzenj/goodreads-analytics/lib/sqliteutil"
	"github.com/katzenj/goodreads-analytics/services/dashboard"
	"github.com/katzenj/goodreads-analytics/services/goodreads"
	"github.com/katzenj/goodreads-analytics/services/library"
	librarydb "github.com/katzenj/goodreads-analytics/services/library/db"
	"github.com/katzenj/goodreads-analytics/services/syncer"
)

type GoodreadsConfig struct {
	BaseUrl        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type SyncConfig struct {
	CooldownMinutes int `json:"cooldown_minutes"`
	FreshnessHours  int `json:"freshness_hours"`
}

type Config struct {
	Port      int             `json:"port"`
	Database  string          `json:"database"`
	Goodreads GoodreadsConfig `json:"goodreads"`
	Sync      SyncConfig      `json:"sync"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.Database == "" {
		cfg.Database = "goodreads.db"
	}

	db, err := sqliteutil.OpenDB(librarydb.Schema, cfg.Database)
	if err != nil {
		serviceutil.Fatal("open database", err)
	}

	client := goodreads.NewClient(goodreads.ClientOptions{
		BaseURL: cfg.Goodreads.BaseUrl,
		Timeout: time.Duration(cfg.Goodreads.TimeoutSeconds) * time.Second,
	})

	InitTelemetry(ctx, *verbose, client)

	store := library.NewStore(db)
	coordinator := syncer.New(client, store, syncer.Options{
		Cooldown:  time.Duration(cfg.Sync.CooldownMinutes) * time.Minute,
		Freshness: time.Duration(cfg.Sync.FreshnessHours) * time.Hour,
	})
	dashboards := dashboard.NewService(store)

	mux := http.NewServeMux()
	registerRoutes(mux, coordinator, dashboards)

	go serviceutil.StartHttpServer(cfg.Port, mux)
	<-ctx.Done()
}
