package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vnk23k-beep/Cyno25/internal/catalog"
	"github.com/vnk23k-beep/Cyno25/internal/config"
	"github.com/vnk23k-beep/Cyno25/internal/metrics"
	"github.com/vnk23k-beep/Cyno25/internal/server"
	"github.com/vnk23k-beep/Cyno25/internal/store"
	"github.com/vnk23k-beep/Cyno25/internal/workers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The catalog is required; without it nothing can be rendered.
	cat, err := catalog.Load(cfg.EventsPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Printf("✅ Loaded %d events from %s", len(cat.Events()), cfg.EventsPath)

	st := store.Open(cfg.StorePath)
	if err := store.Seed(st, cat); err != nil {
		log.Fatalf("seed: %v", err)
	}

	metrics.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backup := &workers.BackupWorker{
		Store:    st,
		Dir:      cfg.BackupDir,
		Interval: cfg.BackupInterval,
		Keep:     cfg.BackupKeep,
	}
	go backup.Run(ctx)

	srv := server.New(cfg, cat, st)
	go func() {
		log.Printf("🧭 Portal API running on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctxTimeout)
}
