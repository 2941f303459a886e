package config

import (
	"os"
	"strconv"
	"time"
)

// ApplyEnv overrides server and seed settings from WONDERS_* variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("WONDERS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("WONDERS_TICKET_SECRET"); v != "" {
		c.Server.TicketSecret = v
	}
	if v := os.Getenv("WONDERS_TICKET_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.TicketTTL = d
		}
	}
	if val, ok := getEnvInt("WONDERS_BOTS"); ok {
		c.Server.Bots = val
	}
	if val, ok := getEnvInt("WONDERS_SEED"); ok {
		c.Seed = int64(val)
	}
}

func getEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return i, true
}
