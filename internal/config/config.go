package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Qdrant struct {
	Host       string
	Port       int
	Collection string
}

type Embedder struct {
	BaseURL string
	Timeout time.Duration
}

type Ranker struct {
	BaseURL string
	Timeout time.Duration
}

type Feedback struct {
	SessionMaxIdle time.Duration
	SweepEvery     int
}

type Config struct {
	HTTP     HTTPServer
	Postgres Postgres
	Redis    RedisCache
	Qdrant   Qdrant
	Embedder Embedder
	Ranker   Ranker
	Feedback Feedback
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Postgres: *newPostgres(),
		Redis:    *newRedis(),
		Qdrant:   *newQdrant(),
		Embedder: *newEmbedder(),
		Ranker:   *newRanker(),
		Feedback: *newFeedback(),
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "cinematch"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newQdrant() *Qdrant {
	return &Qdrant{
		Host:       getenv("QDRANT_HOST", "localhost"),
		Port:       getenvInt("QDRANT_PORT", 6334),
		Collection: getenv("QDRANT_COLLECTION", "movies"),
	}
}

func newEmbedder() *Embedder {
	return &Embedder{
		BaseURL: getenv("EMBEDDER_URL", "http://localhost:8090"),
		Timeout: time.Duration(getenvInt("EMBEDDER_TIMEOUT_SEC", 10)) * time.Second,
	}
}

func newRanker() *Ranker {
	return &Ranker{
		BaseURL: getenv("RANKER_URL", "http://localhost:8091"),
		Timeout: time.Duration(getenvInt("RANKER_TIMEOUT_SEC", 15)) * time.Second,
	}
}

func newFeedback() *Feedback {
	return &Feedback{
		SessionMaxIdle: time.Duration(getenvInt("SESSION_MAX_IDLE_HOURS", 24)) * time.Hour,
		SweepEvery:     getenvInt("SESSION_SWEEP_EVERY", 100),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s %s is not a number, using default %d", logtag, key, defaultValue)
		return defaultValue
	}
	return n
}
