package corpfacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "company_data", cfg.DBName)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "gpt-3.5-turbo", cfg.ModelName)
	assert.InDelta(t, 0.1, cfg.Temperature, 0.0001)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_NAME", "companies.db")
	t.Setenv("MODEL_NAME", "gpt-4o-mini")
	t.Setenv("CHUNK_SIZE", "500")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "companies.db", cfg.DBName)
	assert.Equal(t, "gpt-4o-mini", cfg.ModelName)
	assert.Equal(t, 500, cfg.ChunkSize)
}

func TestLoadConfigEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "OPENAI_API_KEY=sk-from-file\nDB_NAME=filedb\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-file", cfg.OpenAIAPIKey)
	assert.Equal(t, "filedb", cfg.DBName)
}

func TestLoadConfigMissingEnvFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.env"))
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			OpenAIAPIKey: "sk-test",
			DBDriver:     "postgres",
			DBName:       "company_data",
			DBUser:       "postgres",
			ChunkSize:    1000,
			ChunkOverlap: 200,
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.OpenAIAPIKey = ""
	assert.ErrorIs(t, cfg.Validate(), ErrAPIKeyRequired)

	cfg = valid()
	cfg.DBName = ""
	assert.ErrorIs(t, cfg.Validate(), ErrDatabaseRequired)

	// SQLite needs no user.
	cfg = valid()
	cfg.DBDriver = "sqlite3"
	cfg.DBUser = ""
	cfg.DBName = "companies.db"
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.ChunkOverlap = 1000
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.ChunkSize = 0
	assert.Error(t, cfg.Validate())
}

func TestWriteSampleEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.example")
	require.NoError(t, WriteSampleEnv(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "OPENAI_API_KEY=")
	assert.Contains(t, string(data), "DB_NAME=company_data")
}
