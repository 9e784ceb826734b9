package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Log       LogConfig
	Tables    TablesConfig
	Reports   ReportsConfig
	Dashboard DashboardConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig gates the authentication layer and tunes token issuance.
type AuthConfig struct {
	Enabled    bool
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// TablesConfig resolves every table identity once at startup. Repositories
// receive these names through their constructors and never consult the
// environment again.
type TablesConfig struct {
	Students    string
	Orgs        string
	Committees  string
	Memberships string
	Fees        string
	Events      string
	Users       string
	ReportJobs  string
	BalanceView string
}

// Validate fails fast when any table identity is missing.
func (t TablesConfig) Validate() error {
	required := map[string]string{
		"TABLE_STUDENTS":      t.Students,
		"TABLE_ORGANIZATIONS": t.Orgs,
		"TABLE_COMMITTEES":    t.Committees,
		"TABLE_MEMBERSHIPS":   t.Memberships,
		"TABLE_FEES":          t.Fees,
		"TABLE_EVENTS":        t.Events,
		"TABLE_USERS":         t.Users,
		"TABLE_REPORT_JOBS":   t.ReportJobs,
		"VIEW_BALANCES":       t.BalanceView,
	}
	for key, name := range required {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("table name for %s must not be empty", key)
		}
	}
	return nil
}

// ReportsConfig configures asynchronous report generation.
type ReportsConfig struct {
	Enabled           bool
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	WorkerConcurrency int
	WorkerRetries     int
	CleanupInterval   time.Duration
	ResultTTL         time.Duration
}

// DashboardConfig governs dashboard exposure and cache tuning.
type DashboardConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Enabled:    v.GetBool("AUTH_ENABLED"),
		Secret:     v.GetString("AUTH_JWT_SECRET"),
		Expiration: parseDuration(v.GetString("AUTH_JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("AUTH_JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Tables = TablesConfig{
		Students:    v.GetString("TABLE_STUDENTS"),
		Orgs:        v.GetString("TABLE_ORGANIZATIONS"),
		Committees:  v.GetString("TABLE_COMMITTEES"),
		Memberships: v.GetString("TABLE_MEMBERSHIPS"),
		Fees:        v.GetString("TABLE_FEES"),
		Events:      v.GetString("TABLE_EVENTS"),
		Users:       v.GetString("TABLE_USERS"),
		ReportJobs:  v.GetString("TABLE_REPORT_JOBS"),
		BalanceView: v.GetString("VIEW_BALANCES"),
	}
	if err := cfg.Tables.Validate(); err != nil {
		return nil, err
	}

	cfg.Reports = ReportsConfig{
		Enabled:           v.GetBool("ENABLE_REPORTS"),
		StorageDir:        v.GetString("REPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("REPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("REPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		WorkerConcurrency: v.GetInt("REPORTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("REPORTS_WORKER_RETRIES"),
		CleanupInterval:   parseDuration(v.GetString("REPORTS_CLEANUP_INTERVAL"), time.Hour),
		ResultTTL:         parseDuration(v.GetString("REPORTS_RESULT_TTL"), 72*time.Hour),
	}

	cfg.Dashboard = DashboardConfig{
		Enabled:  v.GetBool("ENABLE_DASHBOARD"),
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "org_fees")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("AUTH_JWT_SECRET", "dev_secret")
	v.SetDefault("AUTH_JWT_EXPIRATION", "24h")
	v.SetDefault("AUTH_JWT_ISSUER", "orgfee-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TABLE_STUDENTS", "students")
	v.SetDefault("TABLE_ORGANIZATIONS", "organizations")
	v.SetDefault("TABLE_COMMITTEES", "organization_committees")
	v.SetDefault("TABLE_MEMBERSHIPS", "memberships")
	v.SetDefault("TABLE_FEES", "fees")
	v.SetDefault("TABLE_EVENTS", "organization_events")
	v.SetDefault("TABLE_USERS", "users")
	v.SetDefault("TABLE_REPORT_JOBS", "report_jobs")
	v.SetDefault("VIEW_BALANCES", "membership_balances")

	v.SetDefault("ENABLE_REPORTS", true)
	v.SetDefault("REPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("REPORTS_SIGNED_URL_SECRET", "dev_reports_secret")
	v.SetDefault("REPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("REPORTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("REPORTS_WORKER_RETRIES", 3)
	v.SetDefault("REPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("REPORTS_RESULT_TTL", "72h")

	v.SetDefault("ENABLE_DASHBOARD", true)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
