package cliparse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMongo    = "mongo"
)

const (
	defaultPort          = 3318
	defaultSQLiteURL     = "file:celeru.db"
	defaultMongoDatabase = "celeru"
)

type Config struct {
	Port           int      `validate:"min=1,max=65535"`
	DatabaseURL    string   `validate:"required"`
	DatabaseType   string   `validate:"oneof=sqlite postgres mongo"`
	MongoDatabase  string   `validate:"required_if=DatabaseType mongo"`
	AllowedOrigins []string `validate:"min=1,dive,required"`
	BaseURL        string   `validate:"omitempty,url"`
	LogLevel       string   `validate:"oneof=debug info warn error"`
	LogFormat      string   `validate:"oneof=text json"`
	EnvFile        string
}

var validate = validator.New()

// RegisterFlags binds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	// Network config (can be CLI args or env)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL (file:..., postgres://..., mongodb://...)")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite, postgres or mongo)")
	fs.StringVar(&cfg.MongoDatabase, "mongo-database", "", "MongoDB database name")
	fs.StringSliceVar(&cfg.AllowedOrigins, "origins", nil, "Allowed CORS origins")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public URL of the survey frontend")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.StringVar(&cfg.EnvFile, "env-file", ".env", "Environment file to load if present")
}

// ParseFlags parses args, then fills the gaps from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("celeru", pflag.ContinueOnError)
	RegisterFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := Resolve(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads the env file, applies environment variables and defaults to
// unset fields, and validates the result. Flags take precedence over env.
func Resolve(cfg *Config) error {
	if cfg.EnvFile != "" {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOrDefault("DATABASE_TYPE", DatabaseSQLite)
	}
	cfg.DatabaseType = strings.ToLower(strings.TrimSpace(cfg.DatabaseType))

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType == DatabaseSQLite {
		cfg.DatabaseURL = defaultSQLiteURL
	}
	if cfg.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = envOrDefault("MONGO_DATABASE", defaultMongoDatabase)
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = parseList("ALLOWED_ORIGINS", []string{"*"})
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = envOrDefault("BASE_URL", "http://localhost:3000")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = envOrDefault("LOG_LEVEL", "info")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = envOrDefault("LOG_FORMAT", "text")
	}

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
