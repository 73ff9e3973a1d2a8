package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config carries everything the bot reads from the environment. Values
// come from the process environment, optionally seeded from a .env file
// by the caller before Load runs.
type Config struct {
	TelegramBotToken string
	GeminiAPIKey     string

	RAGDataPath          string
	CorpusEmbeddingsPath string
	Prompt1Path          string
	Prompt2Path          string

	EmbeddingModel          string
	PrimaryGenerativeModel  string
	FallbackGenerativeModel string
	RAGTopN                 int

	AdminUserID        int64
	TelegramChannelURL string
	LogsDir            string
	JournalPath        string

	StorageType      string
	StorageLocalPath string
	S3Bucket         string
	S3Region         string
	AWSAccessKey     string
	AWSSecretKey     string

	Port  int
	Debug bool
}

// Load reads the configuration from environment variables. Missing
// required keys and unparseable numbers are errors; everything else
// falls back to a default.
func Load() (*Config, error) {
	cfg := &Config{
		EmbeddingModel:          getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
		PrimaryGenerativeModel:  getEnv("PRIMARY_GENERATIVE_MODEL", "gemini-2.5-pro"),
		FallbackGenerativeModel: getEnv("FALLBACK_GENERATIVE_MODEL", "gemini-2.5-flash"),
		TelegramChannelURL:      getEnv("TELEGRAM_CHANNEL_URL", "https://t.me/delay_RAG"),
		LogsDir:                 getEnv("LOGS_DIR", "user_logs"),
	}

	for _, required := range []struct {
		name  string
		field *string
	}{
		{"TELEGRAM_BOT_TOKEN", &cfg.TelegramBotToken},
		{"GEMINI_API_KEY", &cfg.GeminiAPIKey},
		{"RAG_DATA_PATH", &cfg.RAGDataPath},
		{"CORPUS_EMBEDDINGS_PATH", &cfg.CorpusEmbeddingsPath},
		{"PROMPT1_PREPROCESSING_PATH", &cfg.Prompt1Path},
		{"PROMPT2_ANALYSIS_PATH", &cfg.Prompt2Path},
	} {
		value := os.Getenv(required.name)
		if value == "" {
			return nil, fmt.Errorf("%s not set", required.name)
		}
		*required.field = value
	}

	var err error
	if cfg.RAGTopN, err = getEnvAsInt("RAG_TOP_N", 5); err != nil {
		return nil, err
	}
	if cfg.RAGTopN <= 0 {
		return nil, fmt.Errorf("RAG_TOP_N must be positive, got %d", cfg.RAGTopN)
	}
	if cfg.AdminUserID, err = getEnvAsInt64("ADMIN_USER_ID", 0); err != nil {
		return nil, err
	}
	if cfg.Port, err = getEnvAsInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getEnvAsBool("DEBUG", false); err != nil {
		return nil, err
	}

	cfg.JournalPath = getEnv("JOURNAL_PATH", filepath.Join(cfg.LogsDir, "journal.jsonl"))

	cfg.StorageType = getEnv("STORAGE_TYPE", "local")
	cfg.StorageLocalPath = getEnv("STORAGE_LOCAL_PATH", cfg.UserFilesDir())
	cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
	cfg.S3Region = getEnv("AWS_REGION", "us-east-1")
	cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	if cfg.StorageType == "s3" && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET not set, required for s3 storage")
	}

	return cfg, nil
}

// UserFilesDir is the default local directory for archived creatives.
func (c *Config) UserFilesDir() string {
	return filepath.Join(c.LogsDir, "user_files")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return parsed, nil
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return parsed, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return parsed, nil
}
