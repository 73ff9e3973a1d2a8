package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("RAG_DATA_PATH", "data/rag_data.csv")
	t.Setenv("CORPUS_EMBEDDINGS_PATH", "data/corpus.npy")
	t.Setenv("PROMPT1_PREPROCESSING_PATH", "prompts/prompt1.txt")
	t.Setenv("PROMPT2_ANALYSIS_PATH", "prompts/prompt2.txt")
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when optional keys are unset", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gemini-embedding-001", cfg.EmbeddingModel)
		assert.Equal(t, "gemini-2.5-pro", cfg.PrimaryGenerativeModel)
		assert.Equal(t, "gemini-2.5-flash", cfg.FallbackGenerativeModel)
		assert.Equal(t, 5, cfg.RAGTopN)
		assert.Equal(t, int64(0), cfg.AdminUserID)
		assert.Equal(t, 8080, cfg.Port)
		assert.False(t, cfg.Debug)
		assert.Equal(t, "user_logs", cfg.LogsDir)
		assert.Equal(t, "user_logs/journal.jsonl", cfg.JournalPath)
		assert.Equal(t, "user_logs/user_files", cfg.UserFilesDir())
		assert.Equal(t, "local", cfg.StorageType)
		assert.Equal(t, "user_logs/user_files", cfg.StorageLocalPath)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		setRequired(t)
		t.Setenv("RAG_TOP_N", "10")
		t.Setenv("ADMIN_USER_ID", "987654321")
		t.Setenv("LOGS_DIR", "/var/lib/adcheck")
		t.Setenv("DEBUG", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 10, cfg.RAGTopN)
		assert.Equal(t, int64(987654321), cfg.AdminUserID)
		assert.Equal(t, "/var/lib/adcheck/journal.jsonl", cfg.JournalPath)
		assert.True(t, cfg.Debug)
	})

	t.Run("missing required key is an error", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GEMINI_API_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("malformed integer is an error", func(t *testing.T) {
		setRequired(t)
		t.Setenv("RAG_TOP_N", "five")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RAG_TOP_N")
	})

	t.Run("non-positive top N is an error", func(t *testing.T) {
		setRequired(t)
		t.Setenv("RAG_TOP_N", "0")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("explicit journal path wins", func(t *testing.T) {
		setRequired(t)
		t.Setenv("JOURNAL_PATH", "/tmp/journal.jsonl")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/journal.jsonl", cfg.JournalPath)
	})

	t.Run("s3 storage requires a bucket", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORAGE_TYPE", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AWS_S3_BUCKET")

		t.Setenv("AWS_S3_BUCKET", "adcheck-archive")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "adcheck-archive", cfg.S3Bucket)
		assert.Equal(t, "us-east-1", cfg.S3Region)
	})
}
