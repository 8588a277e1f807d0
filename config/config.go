package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime parameters of the service.
type Config struct {
	DatabaseURL          string
	ServerPort           int
	JWTSecretKey         string
	OperatorPasswordHash string

	// ScoringRuleset selects the point scheme; empty means the default
	// 3/1/0 scheme.
	ScoringRuleset string

	// Roster is the fixed list of player names. Optional; when set the
	// scoreboard lists every player even before their first prediction.
	Roster []string

	// Fixture source. Either a local file or an R2 bucket object; the
	// file wins when both are set.
	FixturesFile      string
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	FixturesObjectKey string
}

// Load reads the configuration from environment variables, optionally
// seeded from a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	operatorHash := os.Getenv("OPERATOR_PASSWORD_HASH")
	if operatorHash == "" {
		return nil, fmt.Errorf("OPERATOR_PASSWORD_HASH environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var roster []string
	if rawRoster := os.Getenv("ROSTER"); rawRoster != "" {
		for _, name := range strings.Split(rawRoster, ",") {
			if name = strings.TrimSpace(name); name != "" {
				roster = append(roster, name)
			}
		}
	}

	cfg := &Config{
		DatabaseURL:          dbURL,
		ServerPort:           port,
		JWTSecretKey:         jwtKey,
		OperatorPasswordHash: operatorHash,
		ScoringRuleset:       os.Getenv("SCORING_RULESET"),
		Roster:               roster,
		FixturesFile:         os.Getenv("FIXTURES_FILE"),
		R2AccountID:          os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:        os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:    os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:         os.Getenv("R2_BUCKET_NAME"),
		FixturesObjectKey:    os.Getenv("FIXTURES_OBJECT_KEY"),
	}

	return cfg, nil
}

// HasR2Source reports whether a complete R2 fixture source is configured.
func (c *Config) HasR2Source() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.FixturesObjectKey != ""
}
