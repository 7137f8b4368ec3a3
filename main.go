package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "abcbus/internal/config"
	router "abcbus/internal/http"
	"abcbus/internal/repositories"
	"abcbus/internal/seed"
	"abcbus/internal/services"
	"abcbus/internal/tracker"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if env.DBDriver != "mysql" {
		if err := seed.New(db).Run(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Background workers: pending-booking sweeper and the simulated
	// bus tracker.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	sweeper := services.Sweeper{
		Bookings: services.BookingService{BookingTTL: env.BookingTTL},
		Interval: env.SweepInterval,
	}
	go sweeper.Run(workerCtx)

	trk := tracker.New(repositories.BusRepo{DB: db}, env.TrackInterval)
	go trk.Run(workerCtx)

	r := router.NewRouter(env, trk)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
