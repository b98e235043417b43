package config

import (
	"log/slog"
	"time"
)

// NewDefaultConfig creates a new Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: Server{
			Addr:                    ":8080",
			ReadTimeout:             Duration{Duration: 2 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 10 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
		},
		Webjars: Webjars{
			Prefix:     "/webjars",
			Root:       "webjars",
			CacheLevel: "medium",
			Cors:       true,
		},
		Log: Log{
			Level:  LogLevel{Level: slog.LevelInfo},
			Format: "json",
			Request: LogRequest{
				Activated: true,
				Limits: LogRequestLimits{
					URILength:       512, // Minimum: 64
					UserAgentLength: 256, // Minimum: 32
					RefererLength:   512, // Minimum: 64
					RemoteIPLength:  64,  // Minimum: 15
				},
			},
		},
		Metrics: Metrics{
			Activated: false,
			Endpoint:  "/metrics",
		},
		Stats: Stats{
			Activated:  false,
			Endpoint:   "/stats/webjars",
			K:          10,
			WindowSize: 60,
			TickSize:   1000,
		},
	}
}
