/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Crewboard scheduling server.

STARTUP SEQUENCE:
  1. Load environment configuration (.env honored)
  2. Parse command-line flags (flags override env)
  3. Open the SQLite-backed collection store
  4. Best-effort initial roster/template sync
  5. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port
  -db      SQLite database path (":memory:" for ephemeral runs)
  -roster  Roster source (URL or file path)
  -shifts  Weekly shift template source (URL or file path)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, close the store, exit.

SEE ALSO:
  - api/server.go: router configuration
  - config/config.go: environment defaults
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harborops/crewboard/api"
	"github.com/harborops/crewboard/config"
	"github.com/harborops/crewboard/source"
	"github.com/harborops/crewboard/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	rosterSrc := flag.String("roster", cfg.RosterSrc, "roster source (URL or file)")
	shiftsSrc := flag.String("shifts", cfg.ShiftsSrc, "weekly shift source (URL or file)")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	syncer := source.NewSyncer(store, *rosterSrc, *shiftsSrc)

	// Best-effort refresh: failures keep whatever the cache holds.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if _, err := syncer.Sync(ctx); err != nil {
		log.Printf("Warning: initial sync incomplete: %v", err)
	}
	cancel()

	handler := api.NewHandler(store, syncer)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Crewboard listening on http://localhost:%s", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
