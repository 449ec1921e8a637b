package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"transport-optimizer-service/internal/adapters/lock"
	"transport-optimizer-service/internal/adapters/notify"
	"transport-optimizer-service/internal/adapters/repositories"
	"transport-optimizer-service/internal/api"
	"transport-optimizer-service/internal/config"
	"transport-optimizer-service/internal/platform/db"
	"transport-optimizer-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres/SQLite, redis, webhook push) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.LoadOptimizer(os.Getenv("OPTIMIZER_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	database, store, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	var locker ports.RunLocker = lock.Noop{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		locker = lock.NewRedisLocker(client, 2*time.Minute)
		log.Printf("Run locking via redis addr=%s", addr)
	} else {
		log.Println("REDIS_ADDR not set; per-date run locking is process-local only")
	}

	var notifier ports.Notifier = notify.LogNotifier{}
	if endpoint := os.Getenv("PUSH_WEBHOOK_URL"); endpoint != "" {
		notifier = notify.NewWebhookNotifier(endpoint, os.Getenv("PUSH_API_KEY"))
	}

	router := api.NewRouter(api.Deps{
		DB:        database,
		Routes:    store,
		Bookings:  store,
		Transfers: store,
		Runs:      store,
		Notifier:  notifier,
		Locker:    locker,
		Cfg:       cfg,
	})

	port := config.Get("PORT", "8080")
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// storePorts is the union of repository ports the SQL stores implement.
type storePorts interface {
	ports.RouteRepository
	ports.BookingRepository
	ports.TransferLog
	ports.OptimizationRepository
}

// openStore picks Postgres when DATABASE_URL is set and falls back to a
// local SQLite file (with schema init and optional demo seed) otherwise.
func openStore() (*sql.DB, storePorts, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		database, err := db.OpenPostgres(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Using postgres store")
		return database, repositories.NewPostgresStore(database), nil
	}

	path := config.Get("SQLITE_PATH", "data/transport.db")
	database, err := db.OpenSqlite(path)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Using sqlite store path=%s", path)

	if err := repositories.InitSchema(database); err != nil {
		database.Close()
		return nil, nil, err
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/demo.json")
	if _, err := os.Stat(seedPath); err == nil {
		if err := repositories.SeedFromJSON(database, seedPath); err != nil {
			database.Close()
			return nil, nil, err
		}
		log.Printf("Seeded demo data from %s", seedPath)
	}

	return database, repositories.NewSqliteStore(database), nil
}
