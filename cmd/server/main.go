package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"zoneclash/internal/api"
	"zoneclash/internal/config"
	"zoneclash/internal/match"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	cfg := config.Load()
	log.Printf("zoneclash match server: %d TPS, state %.0f Hz, port %d",
		cfg.Sim.TickRate, cfg.Net.StateRateHz, cfg.Server.Port)

	manager := match.NewManager(match.HostOptions{
		Seed:         cfg.Sim.Seed,
		TickRate:     cfg.Sim.TickRate,
		StateRateHz:  cfg.Net.StateRateHz,
		InputTimeout: time.Duration(cfg.Net.InputTimeoutMs) * time.Millisecond,
		EventLogPath: cfg.Sim.EventLogPath,
	})
	manager.OnMatchStart = func(r *match.Room) {
		api.RecordMatchStart(r.Solo)
	}
	manager.OnMatchEnd = func(r *match.Room) {
		api.RecordMatchEnd()
		sim := r.Sim()
		log.Printf("room %s over: winner=%q elapsed=%.0fms", r.ID, sim.Winner, sim.Now())
	}

	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		debugCfg := api.DefaultObservabilityConfig()
		debugCfg.ListenAddr = "127.0.0.1:" + strconv.Itoa(cfg.Server.DebugPort)
		api.StartDebugServer(debugCfg)
	}

	router := api.NewRouter(api.RouterConfig{
		Manager:     manager,
		CORSOrigins: cfg.Server.AllowedOrigins,
		MaxRooms:    cfg.Limits.MaxRooms,
		RateLimitConfig: &api.RateLimitConfig{
			RequestsPerSecond: float64(cfg.Limits.RequestsPerMinute) / 60,
			Burst:             cfg.Limits.RequestsPerMinute / 4,
			CleanupInterval:   5 * time.Minute,
		},
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	for _, room := range manager.Rooms() {
		room.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("bye")
}
