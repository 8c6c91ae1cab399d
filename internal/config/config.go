package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	GinMode   string
	Port      string
	MongoURI  string
	MongoDB   string
	LogLevel  string
	PrettyLog bool
}

func Load() *Config {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		GinMode:   getenv("GIN_MODE", "debug"),
		Port:      getenv("PORT", "5555"),
		MongoURI:  getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:   getenv("MONGODB_DB", "books"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		PrettyLog: os.Getenv("PRETTY_LOG") == "true",
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
