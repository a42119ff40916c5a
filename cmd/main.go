package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vinmasci/bikepathmap/config"
	"github.com/vinmasci/bikepathmap/internal/db"
	deps "github.com/vinmasci/bikepathmap/internal/debs"
	api "github.com/vinmasci/bikepathmap/internal/http/rest"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
)

func main() {
	cfg := config.New()

	database, err := db.New(cfg.Dsn)
	if err != nil {
		log.Panicln("failed to connect to database", "error", err)
	}
	if err := database.Migrate(); err != nil {
		log.Panicln("failed to run migrations", "error", err)
	}

	deps := deps.New(cfg, database)

	a := &api.API{
		Config: cfg,
		Deps:   deps,
	}
	go deps.WebSocket.Run()
	go func() {
		log.Printf("Server running on port %v ...", cfg.Port)
		log.Fatal(a.Serve())
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	log.Println("Request to shutdown server. Doing nothing for ", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	log.Println("Shutting down server...")

	if err := a.Shutdown(); err != nil {
		log.Println("server shutdown failed:", err)
	}

	database.Close()
	log.Println("Database connections closed.")
}
