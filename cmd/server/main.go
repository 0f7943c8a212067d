package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventops/api/internal/airtable"
	"github.com/eventops/api/internal/config"
	"github.com/eventops/api/internal/enum"
	"github.com/eventops/api/internal/router"
	"github.com/eventops/api/internal/store"
	"github.com/eventops/api/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	pg := store.NewPostgres(pool)

	var events router.EventStore
	switch cfg.StoreBackend {
	case enum.StoreBackendPostgres:
		events = pg
	case enum.StoreBackendAirtable:
		if cfg.AirtableAPIKey == "" || cfg.AirtableBaseID == "" {
			log.Fatal("AIRTABLE_API_KEY and AIRTABLE_BASE_ID are required for the airtable store")
		}
		fields, err := airtable.ParseFieldMap(cfg.AirtableFieldMap)
		if err != nil {
			log.Fatalf("Invalid AIRTABLE_FIELD_MAP: %v", err)
		}
		client := airtable.NewClient(cfg.AirtableAPIURL, cfg.AirtableBaseID, cfg.AirtableAPIKey)
		events = airtable.NewEventStore(client, cfg.AirtableEventsTable, cfg.AirtableMenuTable, fields)
	default:
		log.Fatalf("Unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	log.Printf("Using %s event store", cfg.StoreBackend)

	hub := ws.NewHub()
	go hub.Run()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.New(cfg, pg, events, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: shutdown: %v", err)
	}
	log.Println("Server stopped")
}
