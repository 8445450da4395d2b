// Package stageconfig loads per-stage transport endpoints and rates from
// compiled-in production defaults, optionally overridden by an ".env" file
// or real environment variables.
package stageconfig

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Role identifies which of the three pipeline stages is being configured.
type Role string

const (
	RoleStageA Role = "stageA"
	RoleStageB Role = "stageB"
	RoleStageC Role = "stageC"
)

// Config holds the resolved endpoints and rates for one stage.
type Config struct {
	Role Role

	// InboundGroup/InboundEndpoint name the multicast hop this stage
	// receives from: the raw-track origin for stage A, A→B for stage B,
	// B→C for stage C.
	InboundGroup    string
	InboundEndpoint string

	OutboundGroup    string
	OutboundEndpoint string

	FIn  float64
	FOut float64

	InboundQueueCapacity  int
	OutboundQueueCapacity int

	ReceiverCPU int
	WorkerCPU   int
	SenderCPU   int

	ReceiverPriority int
	WorkerPriority   int
	SenderPriority   int
}

// LoadDotEnv loads a ".env" file from the working directory if present.
// Absence is not an error: production deployments rely on compiled-in
// defaults and real environment variables, not a file.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// envString returns the environment variable named key, or fallback if unset
// or empty.
func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envFloat returns the environment variable named key parsed as a float64,
// or fallback if unset or unparsable.
func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// envInt returns the environment variable named key parsed as an int, or
// fallback if unset or unparsable.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
