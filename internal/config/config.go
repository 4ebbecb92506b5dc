package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string
	ServerPort  string
	RedisURL    string
	Env         string
	RedisTTL    time.Duration
	JWTSecret   string
	TokenTTL    time.Duration
	Timezone    string
	BcryptCost  int
	SeedDemo    bool
	FrontendURL string
	DBMaxConns  int
	DBConnTTL   time.Duration
	DBSlowQuery time.Duration
}

func LoadConfig() Config {
	return Config{
		DBHost:      getEnv("DB_HOST", "postgres"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPass:      getEnv("DB_PASSWORD", "password"),
		DBName:      getEnv("DB_NAME", "gamebalance"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		RedisURL:    getEnv("REDIS_URL", "redis:6379"),
		Env:         getEnv("ENV", "dev"),
		RedisTTL:    getEnvAsDuration("REDIS_TTL", 5*time.Minute),
		JWTSecret:   getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:    getEnvAsDuration("TOKEN_TTL", 7*24*time.Hour),
		Timezone:    getEnv("APP_TIMEZONE", "Local"),
		BcryptCost:  getEnvAsInt("BCRYPT_COST", 10),
		SeedDemo:    getEnvAsBool("SEED_DEMO_ACCOUNT", true),
		FrontendURL: getEnv("FRONTEND_URL", ""),
		DBMaxConns:  getEnvAsInt("DB_MAX_CONNS", 10),
		DBConnTTL:   getEnvAsDuration("DB_CONN_TTL", 30*time.Minute),
		DBSlowQuery: getEnvAsDuration("DB_SLOW_QUERY", 200*time.Millisecond),
	}
}

// Location resolves Timezone; calendar-day statistics are computed in it.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}
