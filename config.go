package corpfacts

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Configuration errors.
var (
	// ErrAPIKeyRequired is returned when no OpenAI API key is configured.
	ErrAPIKeyRequired = errors.New("OPENAI_API_KEY is required")

	// ErrDatabaseRequired is returned when the database settings are
	// incomplete.
	ErrDatabaseRequired = errors.New("database name and user are required")
)

// Config holds the runtime settings, loaded from the environment with an
// optional .env file.
type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string

	DBDriver   string
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	ModelName   string
	Temperature float64
	MaxTokens   int

	ChunkSize    int
	ChunkOverlap int
}

// LoadConfig reads settings from envFile (when it exists) and the process
// environment, applying defaults for everything but the API key. Pass an
// empty envFile to read the environment only.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_name", "company_data")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("model_name", "gpt-3.5-turbo")
	v.SetDefault("temperature", 0.1)
	v.SetDefault("max_tokens", 2000)
	v.SetDefault("chunk_size", 1000)
	v.SetDefault("chunk_overlap", 200)

	v.AutomaticEnv()
	// Env vars take the conventional upper-case form.
	for _, key := range []string{
		"openai_api_key", "openai_base_url",
		"db_driver", "db_host", "db_port", "db_name", "db_user", "db_password",
		"model_name", "temperature", "max_tokens",
		"chunk_size", "chunk_overlap",
	} {
		_ = v.BindEnv(key)
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			// A missing env file is fine; the environment still applies.
			if !os.IsNotExist(err) {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return nil, fmt.Errorf("read config file %s: %w", envFile, err)
				}
			}
		}
	}

	cfg := &Config{
		OpenAIAPIKey:  v.GetString("openai_api_key"),
		OpenAIBaseURL: v.GetString("openai_base_url"),
		DBDriver:      v.GetString("db_driver"),
		DBHost:        v.GetString("db_host"),
		DBPort:        v.GetInt("db_port"),
		DBName:        v.GetString("db_name"),
		DBUser:        v.GetString("db_user"),
		DBPassword:    v.GetString("db_password"),
		ModelName:     v.GetString("model_name"),
		Temperature:   v.GetFloat64("temperature"),
		MaxTokens:     v.GetInt("max_tokens"),
		ChunkSize:     v.GetInt("chunk_size"),
		ChunkOverlap:  v.GetInt("chunk_overlap"),
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return ErrAPIKeyRequired
	}
	if c.DBDriver == "postgres" && (c.DBName == "" || c.DBUser == "") {
		return ErrDatabaseRequired
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk overlap must be in [0, chunk size), got %d", c.ChunkOverlap)
	}
	return nil
}

const sampleEnv = `# OpenAI Configuration
OPENAI_API_KEY=your_openai_api_key_here

# Database Configuration
DB_DRIVER=postgres
DB_HOST=localhost
DB_PORT=5432
DB_NAME=company_data
DB_USER=postgres
DB_PASSWORD=your_password_here

# Model Configuration
MODEL_NAME=gpt-3.5-turbo
TEMPERATURE=0.1
MAX_TOKENS=2000

# Text Processing Configuration
CHUNK_SIZE=1000
CHUNK_OVERLAP=200
`

// WriteSampleEnv writes a template env file to the given path.
func WriteSampleEnv(path string) error {
	return os.WriteFile(path, []byte(sampleEnv), 0o644)
}
