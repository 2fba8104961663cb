package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	hasard "github.com/hasard-app/hasard-api"
	hasardhttp "github.com/hasard-app/hasard-api/http"
	"github.com/hasard-app/hasard-api/sqlite"
)

func main() {
	// Load environment variables, a missing .env file is fine in production.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	db := sqlite.NewDB(getenv("HASARD_DSN", "hasard.db"))
	if err := db.Open(); err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	server := hasardhttp.NewServer()
	server.Addr = getenv("HASARD_ADDR", ":8080")
	server.FrontendURL = getenv("HASARD_FRONTEND_URL", "http://localhost:5173")
	server.Debug = os.Getenv("HASARD_DEBUG") == "true"
	server.Auth = hasard.NewSessionAuthority(sqlite.NewUserService(db))
	server.StudentService = sqlite.NewStudentService(db)
	server.EngagementService = sqlite.NewEngagementService(db)
	server.LogService = sqlite.NewLogService(db)

	go func() {
		log.Printf("Starting API server on %s", server.Addr)
		if err := server.Listen(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	// Block until told to shut down, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := server.Close(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
