package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	// Verbose adds source locations to every level, not only warn and error.
	Verbose bool `mapstructure:"verbose"`
}

const (
	StorageDriverXLSX = "xlsx"
	StorageDriverSQL  = "sql"
)

type StorageConfig struct {
	Driver         string `mapstructure:"driver"`
	IssuesFile     string `mapstructure:"issues_file"`
	HistoryFile    string `mapstructure:"history_file"`
	UploadDir      string `mapstructure:"upload_dir"`
	MaxUploadMB    int    `mapstructure:"max_upload_mb"`
	MaxAttachments int    `mapstructure:"max_attachments"`
}

func (s *StorageConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) * 1024 * 1024
}

const (
	DialectSQLite = "sqlite"
	DialectMySQL  = "mysql"
)

type DatabaseConfig struct {
	Dialect         string `mapstructure:"dialect"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Dialect == DialectSQLite {
		return d.SQLitePath
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type CookieConfig struct {
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

// TechTeamConfig holds the single tech team account. PasswordHash is a bcrypt hash;
// Password is only used when no hash is configured.
type TechTeamConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
	Password     string `mapstructure:"password"`
}

type AuthConfig struct {
	JWT        JWTConfig      `mapstructure:"jwt"`
	Cookie     CookieConfig   `mapstructure:"cookie"`
	TechTeam   TechTeamConfig `mapstructure:"tech_team"`
	BcryptCost int            `mapstructure:"bcrypt_cost"`
}

type EmailConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	SMTPHost       string   `mapstructure:"smtp_host"`
	SMTPPort       int      `mapstructure:"smtp_port"`
	SMTPUser       string   `mapstructure:"smtp_user"`
	SMTPPassword   string   `mapstructure:"smtp_password"`
	FromAddress    string   `mapstructure:"from_address"`
	FromName       string   `mapstructure:"from_name"`
	TeamAddresses  []string `mapstructure:"team_addresses"`
	MaxAttempts    int      `mapstructure:"max_attempts"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
}

func (e *EmailConfig) Timeout() time.Duration {
	if e.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(e.TimeoutSeconds) * time.Second
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	Requests      int `mapstructure:"requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type IssuesConfig struct {
	Projects         []string `mapstructure:"projects"`
	ReportCodePrefix string   `mapstructure:"report_code_prefix"`
}
