// Command migrate applies the schema to the configured database.
package main

import (
	"log"

	"github.com/momtheprogram/api-final-writers-blog/internal/config"
	"github.com/momtheprogram/api-final-writers-blog/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migration completed")
}
