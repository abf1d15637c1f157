package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/techflow/techflow/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Storage   sharedConfig.StorageConfig   `mapstructure:"storage"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
	Issues    sharedConfig.IssuesConfig    `mapstructure:"issues"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configFile when given) and TECHFLOW_ environment
// variables. A missing config file is not an error; defaults apply.
func Load(configFile string, env string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("TECHFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case sharedConfig.StorageDriverXLSX, sharedConfig.StorageDriverSQL:
	default:
		return fmt.Errorf("invalid storage.driver %q (expected xlsx or sql)", c.Storage.Driver)
	}
	if c.Storage.Driver == sharedConfig.StorageDriverSQL {
		switch c.Database.Dialect {
		case sharedConfig.DialectSQLite, sharedConfig.DialectMySQL:
		default:
			return fmt.Errorf("invalid database.dialect %q (expected sqlite or mysql)", c.Database.Dialect)
		}
	}
	if c.Storage.MaxUploadMB <= 0 {
		return fmt.Errorf("storage.max_upload_mb must be positive")
	}
	if c.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret must not be empty")
	}
	if c.Auth.TechTeam.Username == "" {
		return fmt.Errorf("auth.tech_team.username must not be empty")
	}
	if c.Auth.TechTeam.PasswordHash == "" && c.Auth.TechTeam.Password == "" {
		return fmt.Errorf("auth.tech_team needs password_hash or password")
	}
	if c.Issues.ReportCodePrefix == "" {
		return fmt.Errorf("issues.report_code_prefix must not be empty")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.timezone", "Asia/Kolkata")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8080"})

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Storage defaults
	v.SetDefault("storage.driver", sharedConfig.StorageDriverXLSX)
	v.SetDefault("storage.issues_file", "data/issues.xlsx")
	v.SetDefault("storage.history_file", "data/issue_history.json")
	v.SetDefault("storage.upload_dir", "static/uploads")
	v.SetDefault("storage.max_upload_mb", 5)
	v.SetDefault("storage.max_attachments", 10)

	// Database defaults
	v.SetDefault("database.dialect", sharedConfig.DialectSQLite)
	v.SetDefault("database.sqlite_path", "data/techflow.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "techflow")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Auth defaults
	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.access_exp_minutes", 480)
	v.SetDefault("auth.cookie.domain", "")
	v.SetDefault("auth.cookie.path", "/")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Lax")
	v.SetDefault("auth.tech_team.username", "admin")
	v.SetDefault("auth.tech_team.password_hash", "")
	v.SetDefault("auth.tech_team.password", "password123")
	v.SetDefault("auth.bcrypt_cost", 12)

	// Email defaults
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_address", "noreply@techflow.local")
	v.SetDefault("email.from_name", "TechFlow Support")
	v.SetDefault("email.team_addresses", []string{})
	v.SetDefault("email.max_attempts", 3)
	v.SetDefault("email.timeout_seconds", 30)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults
	v.SetDefault("ratelimit.requests", 20)
	v.SetDefault("ratelimit.window_seconds", 60)

	// Issue defaults
	v.SetDefault("issues.projects", []string{"PMS", "PGS", "ANPR", "Other"})
	v.SetDefault("issues.report_code_prefix", "TF")
}
