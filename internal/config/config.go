package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/octobees/lead-intel/internal/enrichment/scoring"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL    string
	RedisAddr      string
	CacheTTL       time.Duration
	JWTSecret      string
	Port           string
	WorkerBaseURL  string
	ApolloAPIKey   string
	OpenAIAPIKey   string
	OpenAIModel    string
	PhoneRegion    string
	DirectoryURL   string
	RateLimitFetch RateLimitConfig
	TokenTTL       time.Duration
	ScoreWeights   scoring.Config
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		CacheTTL:      parseDuration(getEnv("CACHE_TTL", "1h"), time.Hour),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret"),
		Port:          getEnv("PORT", "8080"),
		WorkerBaseURL: getEnv("WORKER_BASE_URL", "http://worker:9000"),
		ApolloAPIKey:  os.Getenv("APOLLO_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4"),
		PhoneRegion:   getEnv("PHONE_REGION", "US"),
		DirectoryURL:  os.Getenv("DIRECTORY_BASE_URL"),
		TokenTTL:      parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_FETCH", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_FETCH value: %w", err)
	}
	cfg.RateLimitFetch = rl

	weights, err := parseScoreWeights(os.Getenv("SCORE_WEIGHTS"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCORE_WEIGHTS value: %w", err)
	}
	cfg.ScoreWeights = weights

	return cfg, nil
}

// parseScoreWeights applies `<rule>=<weight>` overrides on top of the default
// scoring configuration, e.g. "funding_weight=0.3,domain_weight=0.05".
func parseScoreWeights(value string) (scoring.Config, error) {
	weights := scoring.DefaultConfig()
	value = strings.TrimSpace(value)
	if value == "" {
		return weights, nil
	}

	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return weights, fmt.Errorf("expected <rule>=<weight>, got %q", pair)
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || weight < 0 {
			return weights, fmt.Errorf("invalid weight for %q: %v", parts[0], parts[1])
		}

		switch strings.ToLower(strings.TrimSpace(parts[0])) {
		case "funding_weight":
			weights.FundingWeight = weight
		case "employee_count_weight":
			weights.EmployeeCountWeight = weight
		case "tech_stack_weight":
			weights.TechStackWeight = weight
		case "has_summary_weight":
			weights.HasSummaryWeight = weight
		case "domain_weight":
			weights.DomainWeight = weight
		case "custom_rule_weight":
			weights.CustomRuleWeight = weight
		default:
			return weights, fmt.Errorf("unknown scoring rule: %s", parts[0])
		}
	}

	return weights, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}
