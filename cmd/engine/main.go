package main

import (
	"log"
	"os"
	"strconv"

	"github.com/rawblock/wheel-engine/internal/api"
	"github.com/rawblock/wheel-engine/internal/db"
	"github.com/rawblock/wheel-engine/internal/runner"
	"github.com/rawblock/wheel-engine/internal/wheel"
)

func main() {
	log.Println("Starting RawBlock Wheel Engine (covering design generator)...")

	// The database is optional: without it the engine generates wheels but
	// keeps no history.
	var dbConn *db.PostgresStore
	if dbUrl := os.Getenv("DATABASE_URL"); dbUrl != "" {
		var err error
		dbConn, err = db.Connect(dbUrl)
		if err != nil {
			log.Printf("Warning: Failed to connect to PostgreSQL, continuing without wheel history. Error: %v", err)
			dbConn = nil
		} else {
			defer dbConn.Close()
			if err := dbConn.InitSchema(); err != nil {
				log.Printf("Warning: DB schema init failed: %v", err)
			}
		}
	} else {
		log.Println("DATABASE_URL not set, wheel history disabled")
	}

	limits := limitsFromEnv()
	log.Printf("Resource ceilings: %d tracked subsets, %d candidates (%d at K>=%d), %d greedy tickets",
		limits.MaxTrackedSubsets, limits.MaxCandidates, limits.MaxCandidatesLargeK,
		limits.LargeKThreshold, limits.MaxGreedyTickets)

	// Setup WebSocket Hub
	wsHub := api.NewHub()
	go wsHub.Run()

	// Background generation workers, completion alerts fanned out via the hub
	workers := getEnvInt("WHEEL_MAX_WORKERS", 4)
	jobRunner := runner.New(limits, workers, api.BroadcastWheelAlert(wsHub))

	// Setup the Gin Router
	r := api.SetupRouter(dbConn, wsHub, jobRunner, limits)

	port := getEnvOrDefault("PORT", "5340")

	log.Printf("Engine running on :%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// limitsFromEnv starts from the production defaults and applies any
// per-deployment overrides. The ceilings are tuning knobs, not algorithm
// constants, so they live here rather than in the wheel package.
func limitsFromEnv() wheel.Limits {
	limits := wheel.DefaultLimits()
	limits.MaxTrackedSubsets = getEnvInt64("WHEEL_MAX_TRACKED_SUBSETS", limits.MaxTrackedSubsets)
	limits.MaxCandidates = getEnvInt64("WHEEL_MAX_CANDIDATES", limits.MaxCandidates)
	limits.MaxCandidatesLargeK = getEnvInt64("WHEEL_MAX_CANDIDATES_LARGE_K", limits.MaxCandidatesLargeK)
	limits.MaxGreedyTickets = getEnvInt("WHEEL_MAX_GREEDY_TICKETS", limits.MaxGreedyTickets)
	return limits
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: ignoring invalid %s=%q", key, val)
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: ignoring invalid %s=%q", key, val)
	}
	return fallback
}
