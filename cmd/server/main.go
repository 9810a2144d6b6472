package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/calvinwijaya/blackjack-be/internal/api"
	"github.com/calvinwijaya/blackjack-be/internal/config"
	"github.com/calvinwijaya/blackjack-be/internal/db"
	"github.com/calvinwijaya/blackjack-be/internal/game"
	"github.com/calvinwijaya/blackjack-be/internal/store"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           cfg.Level(),
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped", "error", err)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := quartz.NewReal()

	// Initialize the store, backed by the database when one is available
	var (
		sessions store.Store
		database *db.Database
	)
	if cfg.PersistenceEnabled() {
		var err error
		database, err = openDatabase(cfg)
		if err != nil {
			logger.Warn("Failed to initialize database", "driver", cfg.DBDriver, "error", err)
			logger.Warn("Continuing without database persistence")
			database = nil
		} else {
			logger.Info("Database initialized", "driver", cfg.DBDriver)
			defer database.Close()
		}
	}
	if database != nil {
		sessions = store.NewDatabaseStore(database, clock)
	} else {
		sessions = store.NewMemoryStore(clock)
		logger.Info("In-memory session store initialized")
	}

	hub := api.NewHub(logger.With("component", "hub"))

	handlers := api.NewHandlers(sessions, database, hub, logger.With("component", "api"))
	if cfg.Seed != 0 {
		handlers.SetDeckSource(seededDecks(cfg.Seed))
		logger.Info("Using seeded shuffles", "seed", cfg.Seed)
	}

	// Set up router
	r := mux.NewRouter()
	handlers.RegisterRoutes(r)
	r.Use(api.LoggingMiddleware(logger.With("component", "http")))

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(ctx)
	})
	g.Go(func() error {
		return store.RunSweeper(ctx, sessions, clock, cfg.SweepInterval, cfg.SessionTTL, logger.With("component", "sweeper"))
	})
	g.Go(func() error {
		logger.Info("Starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openDatabase(cfg *config.Config) (*db.Database, error) {
	if cfg.DBDriver == db.DriverSQLite {
		// Create data directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return db.Open(cfg.DBDriver, cfg.DBDSN)
}

// seededDecks shuffles every new deck from one seeded source, so a server
// started with the same seed deals the same sequence of rounds.
func seededDecks(seed uint64) func() game.Deck {
	var mu sync.Mutex
	rng := rand.New(rand.NewPCG(seed, seed))
	return func() game.Deck {
		mu.Lock()
		defer mu.Unlock()
		return game.StandardDeck().ShuffleWith(rng)
	}
}
