package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/timmy/reconlens/internal/domain"
)

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Output    OutputConfig    `mapstructure:"output"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Commons   CommonsConfig   `mapstructure:"commons"`
	WebSearch WebSearchConfig `mapstructure:"websearch"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Server    ServerConfig    `mapstructure:"server"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	Stdout     bool   `mapstructure:"stdout"`
	MaxSizeMB  int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type OutputConfig struct {
	Root    string `mapstructure:"root"`
	Catalog string `mapstructure:"catalog"` // optional JSON catalog override
}

type FetchConfig struct {
	Target      int  `mapstructure:"target"`
	MaxPerQuery int  `mapstructure:"max_per_query"`
	DelayMs     int  `mapstructure:"delay_ms"`
	Workers     int  `mapstructure:"workers"`
	Relaxed     bool `mapstructure:"relaxed"`
	SkipPrimary bool `mapstructure:"skip_primary"`
	Force       bool `mapstructure:"force"`
	MinBytes    int  `mapstructure:"min_bytes"`
}

// Validate rejects settings that would make every site finish empty.
func (c FetchConfig) Validate() error {
	if c.Target < 1 {
		return fmt.Errorf("%w: fetch.target must be at least 1, got %d", domain.ErrInvalidSetting, c.Target)
	}
	if c.MaxPerQuery < 1 {
		return fmt.Errorf("%w: fetch.max_per_query must be at least 1, got %d", domain.ErrInvalidSetting, c.MaxPerQuery)
	}
	return nil
}

// Delay returns the pause between queries and downloads.
func (c FetchConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

type HTTPConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	Retries           int           `mapstructure:"retries"`
	RetryWait         time.Duration `mapstructure:"retry_wait"`
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

type CommonsConfig struct {
	APIURL     string `mapstructure:"api_url"`
	ThumbWidth int    `mapstructure:"thumb_width"`
}

type WebSearchConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Driver          string        `mapstructure:"driver"` // sqlite or postgres
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the driver specific connection string.
// Parameters: none.
// Returns:
//   - string: file path for sqlite, key/value DSN for postgres.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return c.Path
}

type StorageConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Type      string `mapstructure:"type"` // r2, s3, s3compatible; empty auto-detects
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
	Prefix    string `mapstructure:"prefix"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// Load reads configuration from file, .env and environment.
// Parameters:
//   - configPath: explicit config file; empty searches ./configs and the working directory.
//
// Returns:
//   - *Config: merged configuration.
//   - error: non-nil if an existing config file cannot be parsed.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// RECON_FETCH_TARGET overrides fetch.target
	v.SetEnvPrefix("recon")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unprefixed names for logging and secrets
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.file", "LOG_FILE")
	v.BindEnv("log.stdout", "LOG_STDOUT")
	v.BindEnv("log.max_size", "LOG_MAX_SIZE")
	v.BindEnv("log.max_backups", "LOG_MAX_BACKUPS")
	v.BindEnv("log.max_age", "LOG_MAX_AGE")
	v.BindEnv("log.compress", "LOG_COMPRESS")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	v.BindEnv("storage.access_key", "STORAGE_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "STORAGE_SECRET_KEY")
	v.BindEnv("storage.bucket", "STORAGE_BUCKET")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.stdout", true)
	v.SetDefault("log.max_size", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 14)
	v.SetDefault("log.compress", true)

	v.SetDefault("output.root", "./data/reconstructions")

	v.SetDefault("fetch.target", 30)
	v.SetDefault("fetch.max_per_query", 50)
	v.SetDefault("fetch.delay_ms", 200)
	v.SetDefault("fetch.workers", 2)
	v.SetDefault("fetch.min_bytes", 3000)

	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.retries", 2)
	v.SetDefault("http.retry_wait", 2*time.Second)

	v.SetDefault("commons.api_url", "https://commons.wikimedia.org/w/api.php")
	v.SetDefault("commons.thumb_width", 1280)

	v.SetDefault("websearch.enabled", true)
	v.SetDefault("websearch.base_url", "https://www.bing.com/images/search")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/runs.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.prefix", "galleries")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
}
