package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment with a
// .env file honored when present.
type Config struct {
	Port         string
	MySQLDSN     string
	GeminiAPIKey string
	JWTSecret    string
	RedisAddr    string
	RedisPass    string
	MaxRounds    int
	SynthTimeout time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	user := getenv("MYSQL_USER", "user")
	pwd := getenv("MYSQL_PWD", "password")
	host := getenv("MYSQL_HOST", "tcp(127.0.0.1:3306)")
	dbName := getenv("MYSQL_DATABASE", "autonego_db")

	return Config{
		Port:         getenv("PORT", "8080"),
		MySQLDSN:     fmt.Sprintf("%s:%s@%s/%s?parseTime=true&loc=Local", user, pwd, host, dbName),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		JWTSecret:    getenv("JWT_SECRET", "dev-secret"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		MaxRounds:    getint("NEGO_MAX_ROUNDS", 8),
		SynthTimeout: time.Duration(getint("SYNTH_TIMEOUT_MS", 5000)) * time.Millisecond,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
