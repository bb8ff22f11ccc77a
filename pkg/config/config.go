package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-raytracer/pkg/output"
)

// Config holds deployment settings read from the environment
type Config struct {
	OutputDir  string
	NumWorkers int // 0 = use CPU count
	Port       int
	S3         output.S3Config
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		OutputDir:  "output",
		NumWorkers: 0,
		Port:       8080,
	}
}

// Load reads the given .env files (missing files are ignored) and then the
// process environment. Variables already set in the environment win over
// values from .env files.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.OutputDir = getEnv("RAYTRACER_OUTPUT_DIR", cfg.OutputDir)

	workers, err := getEnvInt("RAYTRACER_WORKERS", cfg.NumWorkers)
	if err != nil {
		return Config{}, err
	}
	if workers < 0 {
		return Config{}, fmt.Errorf("RAYTRACER_WORKERS must not be negative, got %d", workers)
	}
	cfg.NumWorkers = workers

	port, err := getEnvInt("RAYTRACER_PORT", cfg.Port)
	if err != nil {
		return Config{}, err
	}
	if port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("RAYTRACER_PORT out of range: %d", port)
	}
	cfg.Port = port

	cfg.S3 = output.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
	}

	return cfg, nil
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
