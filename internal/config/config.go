package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort          = "8080"
	defaultGraceDelaySec = 10
	defaultSweepSec      = 60
)

type Config struct {
	// HTTP/WebSocket listen port
	Port string

	// How long an empty room lingers before reclamation
	GraceDelay time.Duration

	// Cadence of the backstop sweep for empty rooms
	SweepInterval time.Duration
}

// Reads configuration from the environment, falling back to defaults
func Load() Config {
	return Config{
		Port:          envOr("PORT", defaultPort),
		GraceDelay:    time.Duration(envInt("SKETCHWIRE_GRACE_DELAY", defaultGraceDelaySec)) * time.Second,
		SweepInterval: time.Duration(envInt("SKETCHWIRE_SWEEP_INTERVAL", defaultSweepSec)) * time.Second,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil || i <= 0 {
			log.Printf("invalid %s=%s, fallback to default (%d)", key, v, def)
			return def
		}
		return i
	}
	return def
}
