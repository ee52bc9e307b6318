package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	LogDev          bool
	MongoURI        string
	MongoDB         string
	RedisAddr       string
	RateLimitPerMin int
	RabbitURL       string
	Exchange        string
	Queue           string
	BindKey         string
	Concurrency     int
	DDEnabled       bool
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Load reads .env (if any) and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "5000"),
		Env:             getenv("APP_ENV", "dev"),
		LogDev:          getbool("LOG_DEV", false),
		MongoURI:        mongoURI(),
		MongoDB:         getenv("MONGO_DB", "ovigo"),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RateLimitPerMin: geti("RATE_LIMIT_PER_MIN", 30),
		RabbitURL:       getenv("RABBIT_URL", ""),
		Exchange:        getenv("RABBIT_EXCHANGE", "community.events"),
		Queue:           getenv("RABBIT_QUEUE", "community-notify"),
		BindKey:         getenv("RABBIT_BIND_KEY", "#"),
		Concurrency:     geti("RABBIT_CONCURRENCY", 4),
		DDEnabled:       getbool("DD_ENABLED", false),
		CORSOrigins:     getlist("CORS_ORIGINS", []string{"*"}),
		ShutdownTimeout: getdur("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// mongoURI prefers MONGO_URI. Otherwise it builds an Atlas SRV string from
// DB_USER, DB_PASS and MONGO_HOST.
func mongoURI() string {
	if v := os.Getenv("MONGO_URI"); v != "" {
		return v
	}
	user, pass, host := os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("MONGO_HOST")
	if user != "" && pass != "" && host != "" {
		return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
			url.QueryEscape(user), url.QueryEscape(pass), host)
	}
	return "mongodb://localhost:27017"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func geti(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getlist(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
