package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

type NATSConfig struct {
	URL    string `mapstructure:"url"`
	Stream string `mapstructure:"stream"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName   string `mapstructure:"service_name"`
	CollectorAddr string `mapstructure:"collector_addr"`
	Enabled       bool   `mapstructure:"enabled"`
}

// ProviderConfig points at the HAFAS REST endpoint.
type ProviderConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	JourneyResults int           `mapstructure:"journey_results"`
	StationResults int           `mapstructure:"station_results"`
	WebURL         string        `mapstructure:"web_url"`
}

type AlertsConfig struct {
	FeedURL  string        `mapstructure:"feed_url"`
	Limit    int           `mapstructure:"limit"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type DashboardConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	Concurrency     int           `mapstructure:"concurrency"`
	JourneyCacheTTL time.Duration `mapstructure:"journey_cache_ttl"`
	StationCacheTTL time.Duration `mapstructure:"station_cache_ttl"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

// Load reads configuration from an optional .env file, an optional config
// file and environment variables, in increasing precedence.
func Load(service string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, service)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: OEBBDASH_PROVIDER_BASE_URL → provider.base_url
	v.SetEnvPrefix("OEBBDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "oebbdash")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "oebbdash")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream", "OEBBDASH")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.collector_addr", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("provider.base_url", "https://oebb.macistry.com/api")
	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("provider.journey_results", 5)
	v.SetDefault("provider.station_results", 20)
	v.SetDefault("provider.web_url", "https://live.oebb.at/journey-view")
	v.SetDefault("alerts.feed_url", "https://origamihase.github.io/wien-oepnv/feed.xml")
	v.SetDefault("alerts.limit", 5)
	v.SetDefault("alerts.cache_ttl", 5*time.Minute)
	v.SetDefault("dashboard.refresh_interval", 2*time.Minute)
	v.SetDefault("dashboard.concurrency", 4)
	v.SetDefault("dashboard.journey_cache_ttl", 30*time.Second)
	v.SetDefault("dashboard.station_cache_ttl", 5*time.Minute)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "oebbdash-refresh")
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}
	if !isHTTPURL(c.Provider.BaseURL) {
		errs = append(errs, fmt.Sprintf("provider.base_url must be an http(s) URL, got %q", c.Provider.BaseURL))
	}
	if !isHTTPURL(c.Provider.WebURL) {
		errs = append(errs, fmt.Sprintf("provider.web_url must be an http(s) URL, got %q", c.Provider.WebURL))
	}
	if c.Provider.Timeout <= 0 {
		errs = append(errs, "provider.timeout must be positive")
	}
	if c.Provider.JourneyResults <= 0 {
		errs = append(errs, "provider.journey_results must be positive")
	}
	if c.Provider.StationResults <= 0 {
		errs = append(errs, "provider.station_results must be positive")
	}
	if !isHTTPURL(c.Alerts.FeedURL) {
		errs = append(errs, fmt.Sprintf("alerts.feed_url must be an http(s) URL, got %q", c.Alerts.FeedURL))
	}
	if c.Alerts.Limit <= 0 {
		errs = append(errs, "alerts.limit must be positive")
	}
	if c.Dashboard.RefreshInterval < 10*time.Second {
		errs = append(errs, "dashboard.refresh_interval must be at least 10s")
	}
	if c.Dashboard.Concurrency <= 0 {
		errs = append(errs, "dashboard.concurrency must be positive")
	}
	if c.Temporal.TaskQueue == "" {
		errs = append(errs, "temporal.task_queue is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
