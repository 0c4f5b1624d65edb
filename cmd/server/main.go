package main

import (
	"log"

	"educonnect/internal/config"
	"educonnect/internal/db"
	"educonnect/internal/router"
	"educonnect/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Fail closed on missing secrets before anything can issue a token.
	if err := config.Load(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Database
	db.Init()

	// Start the async view counter
	services.GetViewCounter()

	// Initialize Gin
	r := gin.Default()

	router.RegisterRoutes(r)

	port := config.Port()
	log.Printf("EduConnect API starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
