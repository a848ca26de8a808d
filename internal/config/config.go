package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings. LLM provider settings live in the llm
// package.
type Config struct {
	DBPath         string // empty means store.DefaultDBPath
	CatalogPath    string // empty means the embedded catalog
	LogLevel       string
	LogFormat      string
	LogFile        string
	QuizBatchSize  int
	MaxImageBytes  int64
	AttemptHistory int // quiz attempts kept in the store
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		DBPath:         getEnv("HSCLAB_DB", ""),
		CatalogPath:    getEnv("HSCLAB_CATALOG", ""),
		LogLevel:       getEnv("HSCLAB_LOG_LEVEL", "info"),
		LogFormat:      getEnv("HSCLAB_LOG_FORMAT", "json"),
		LogFile:        getEnv("HSCLAB_LOG_FILE", defaultLogFile()),
		QuizBatchSize:  positive(getEnvInt("HSCLAB_QUIZ_BATCH_SIZE", 10), 10),
		MaxImageBytes:  int64(positive(getEnvInt("HSCLAB_MAX_IMAGE_MB", 8), 8)) * 1024 * 1024,
		AttemptHistory: positive(getEnvInt("HSCLAB_ATTEMPT_HISTORY", 200), 200),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func positive(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}

// defaultLogFile resolves $XDG_STATE_HOME/hsclab/hsclab.log, falling back to
// ~/.local/state.
func defaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "hsclab.log")
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "hsclab", "hsclab.log")
}
