package config

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// EnvPrefix prefixes every environment override, e.g. WEBJARCORS_SERVER_ADDR.
const EnvPrefix = "WEBJARCORS_"

// HealthEndpoint is always routed and cannot be taken by another endpoint.
const HealthEndpoint = "/healthz"

type Config struct {
	Server  Server  `toml:"server" envPrefix:"SERVER_"`
	Webjars Webjars `toml:"webjars" envPrefix:"WEBJARS_"`
	Log     Log     `toml:"log" envPrefix:"LOG_"`
	Metrics Metrics `toml:"metrics" envPrefix:"METRICS_"`
	Stats   Stats   `toml:"stats" envPrefix:"STATS_"`
}

type Server struct {
	Addr                    string   `toml:"addr" env:"ADDR"`
	ReadTimeout             Duration `toml:"read_timeout" env:"READ_TIMEOUT"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout" env:"READ_HEADER_TIMEOUT"`
	WriteTimeout            Duration `toml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout             Duration `toml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout" env:"SHUTDOWN_GRACEFUL_TIMEOUT"`
}

type Webjars struct {
	// Prefix is the URL namespace, "/webjars" by default.
	Prefix string `toml:"prefix" env:"PREFIX"`
	// Root is the directory holding <library>/<version>/<file>.
	Root string `toml:"root" env:"ROOT"`
	// CacheLevel sizes the asset cache: small, medium, large, very-large.
	// Empty disables caching.
	CacheLevel string `toml:"cache_level" env:"CACHE_LEVEL"`
	// Dev serves assets with no-store instead of immutable caching.
	Dev bool `toml:"dev" env:"DEV"`
	// Cors toggles the allow-origin handler.
	Cors bool `toml:"cors" env:"CORS"`
}

type Log struct {
	Level   LogLevel   `toml:"level" env:"LEVEL"`
	Format  string     `toml:"format" env:"FORMAT"` // json or text
	Request LogRequest `toml:"request" envPrefix:"REQUEST_"`
}

type LogRequest struct {
	Activated bool             `toml:"activated" env:"ACTIVATED"`
	Limits    LogRequestLimits `toml:"limits" envPrefix:"LIMITS_"`
}

// LogRequestLimits caps the length of logged request fields.
type LogRequestLimits struct {
	URILength       int `toml:"uri_length" env:"URI_LENGTH"`
	UserAgentLength int `toml:"user_agent_length" env:"USER_AGENT_LENGTH"`
	RefererLength   int `toml:"referer_length" env:"REFERER_LENGTH"`
	RemoteIPLength  int `toml:"remote_ip_length" env:"REMOTE_IP_LENGTH"`
}

type Metrics struct {
	Activated bool   `toml:"activated" env:"ACTIVATED"`
	Endpoint  string `toml:"endpoint" env:"ENDPOINT"`
}

// Stats configures the hot library tracker.
type Stats struct {
	Activated  bool   `toml:"activated" env:"ACTIVATED"`
	Endpoint   string `toml:"endpoint" env:"ENDPOINT"`
	K          int    `toml:"k" env:"K"`
	WindowSize int    `toml:"window_size" env:"WINDOW_SIZE"`
	TickSize   uint64 `toml:"tick_size" env:"TICK_SIZE"`
}

// Duration is a time.Duration that reads and writes as "15s", "1m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LogLevel is a slog.Level that reads and writes as "info", "DEBUG".
type LogLevel struct {
	slog.Level
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return fmt.Errorf("empty log level")
	}
	return l.Level.UnmarshalText(text)
}

func (l LogLevel) MarshalText() ([]byte, error) {
	return l.Level.MarshalText()
}

// Provider hands out the current configuration. Get is safe for concurrent
// use with Update.
type Provider struct {
	value atomic.Pointer[Config]
}

func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		panic("config: initial config cannot be nil")
	}
	p := &Provider{}
	p.value.Store(cfg)
	return p
}

func (p *Provider) Get() *Config {
	return p.value.Load()
}

func (p *Provider) Update(cfg *Config) {
	if cfg == nil {
		panic("config: updated config cannot be nil")
	}
	p.value.Store(cfg)
}
