package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dwincahya/hausjogja-backend/internal/database"
	"github.com/dwincahya/hausjogja-backend/internal/handlers"
	"github.com/dwincahya/hausjogja-backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app := &handlers.Handlers{DB: db}

	router := routes.SetupRouter(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("Starting HausJogja API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
