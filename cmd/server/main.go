// Package main serves websocket tables: one remote player against bots.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/signalnine/wonders/config"
	"github.com/signalnine/wonders/engine"
	"github.com/signalnine/wonders/ports/ws"
	"github.com/signalnine/wonders/simulation"
)

var (
	configPath string
	verbose    bool
)

func init() {
	flag.StringVar(&configPath, "config", getenv("WONDERS_CONFIG", ""), "YAML configuration file")
	flag.BoolVar(&verbose, "verbose", false, "Log every turn")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	flag.Parse()
	logger := engine.StdLogger{L: log.New(os.Stderr, "wonders ", log.LstdFlags), Verbose: verbose}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	secret := cfg.Server.TicketSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Info("no ticket secret configured, tickets will not survive a restart")
	}
	tickets, err := ws.NewTicketIssuer(secret, cfg.Server.TicketTTL)
	if err != nil {
		log.Fatalf("tickets: %v", err)
	}

	srv := ws.NewServer(tickets, botSeats(cfg.Players, cfg.Server.Bots), cfg.Seed, logger)
	logger.Info("listening on %s with %d bots", cfg.Server.Addr, cfg.Server.Bots)
	if err := http.ListenAndServe(cfg.Server.Addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}

// botSeats cycles the configured players until n seats are filled
func botSeats(players []simulation.AlgorithmSpec, n int) []simulation.AlgorithmSpec {
	out := make([]simulation.AlgorithmSpec, n)
	for i := range out {
		out[i] = players[i%len(players)]
	}
	return out
}
