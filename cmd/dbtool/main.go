package main

import (
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"transport-optimizer-service/internal/adapters/repositories"
	"transport-optimizer-service/internal/config"
	"transport-optimizer-service/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		database, err := db.OpenPostgres(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close()

		log.Println("Initializing postgres schema...")
		if err := repositories.InitSchema(database); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		log.Println("Schema ready. Demo seeding targets the local sqlite store only.")
		return
	}

	path := config.Get("SQLITE_PATH", "data/transport.db")
	database, err := db.OpenSqlite(path)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	log.Println("Initializing sqlite schema...")
	if err := repositories.InitSchema(database); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	seedPath := config.Get("SEED_PATH", "data/seeds/demo.json")
	log.Printf("Seeding from %s...", seedPath)
	if err := repositories.SeedFromJSON(database, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
