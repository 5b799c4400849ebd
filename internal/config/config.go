package config

import "os"

// Config carries the process configuration, all env-driven
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	CacheBackend  string // "memory" or "redis"
	HTTPPort      string
}

// Load reads configuration from the environment with local defaults
func Load() *Config {
	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "voicedeck"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
