package config

import "testing"

func TestValidate(t *testing.T) {
	t.Parallel()
	if err := Validate(NewDefaultConfig()); err != nil {
		t.Fatalf("Validate(default) error = %v", err)
	}

	invalid := map[string]func(*Config){
		"empty addr":       func(c *Config) { c.Server.Addr = "" },
		"root prefix":      func(c *Config) { c.Webjars.Prefix = "/" },
		"wildcard prefix":  func(c *Config) { c.Webjars.Prefix = "/:lib" },
		"empty root":       func(c *Config) { c.Webjars.Root = "" },
		"log format":       func(c *Config) { c.Log.Format = "xml" },
		"short uri limit":  func(c *Config) { c.Log.Request.Limits.URILength = 10 },
		"zero shutdown":    func(c *Config) { c.Server.ShutdownGracefulTimeout.Duration = 0 },
		"stats zero k":     func(c *Config) { c.Stats.Activated = true; c.Stats.K = 0 },
		"metrics relative": func(c *Config) { c.Metrics.Activated = true; c.Metrics.Endpoint = "metrics" },
		"metrics in prefix": func(c *Config) {
			c.Metrics.Activated = true
			c.Metrics.Endpoint = "/webjars/metrics"
		},
		"metrics on health": func(c *Config) {
			c.Metrics.Activated = true
			c.Metrics.Endpoint = HealthEndpoint
		},
		"stats on health": func(c *Config) {
			c.Stats.Activated = true
			c.Stats.Endpoint = HealthEndpoint
		},
		"prefix on health": func(c *Config) { c.Webjars.Prefix = "healthz/" },
		"shared endpoint": func(c *Config) {
			c.Metrics.Activated = true
			c.Stats.Activated = true
			c.Stats.Endpoint = c.Metrics.Endpoint
		},
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Errorf("Validate() expected error, got nil")
			}
		})
	}
}

func TestValidateServer(t *testing.T) {
	t.Parallel()
	validCases := []Server{
		{Addr: ":8080"},
		{Addr: "localhost:8080"},
		{Addr: "[::1]:8080"},
	}
	for _, cfg := range validCases {
		cfg.ShutdownGracefulTimeout = Duration{Duration: 1}
		if err := validateServer(&cfg); err != nil {
			t.Errorf("validateServer(%+v) failed: %v", cfg, err)
		}
	}

	invalidCases := []Server{
		{},
		{Addr: "localhost"},
		{Addr: ":99999"},
		{Addr: ":http"},
	}
	for _, cfg := range invalidCases {
		cfg.ShutdownGracefulTimeout = Duration{Duration: 1}
		if err := validateServer(&cfg); err == nil {
			t.Errorf("validateServer(%+v) expected error, got nil", cfg)
		}
	}
}

func TestValidateServer_DefaultsHost(t *testing.T) {
	t.Parallel()
	s := Server{Addr: ":8080", ShutdownGracefulTimeout: Duration{Duration: 1}}
	if err := validateServer(&s); err != nil {
		t.Fatal(err)
	}
	if s.Addr != "localhost:8080" {
		t.Errorf("Addr = %q, want localhost:8080", s.Addr)
	}
}

func TestValidateServerPort(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		portStr   string
		expectErr bool
	}{
		{"Valid port", "8080", false},
		{"Empty port", "", false},
		{"Port 0", "0", true},
		{"Port 65536", "65536", true},
		{"Non-numeric port", "http", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateServerPort(tc.portStr)
			if (err != nil) != tc.expectErr {
				t.Fatalf("validateServerPort() error = %v, expectErr %v", err, tc.expectErr)
			}
		})
	}
}

func TestValidateRequestLog(t *testing.T) {
	t.Parallel()
	validCfg := LogRequest{Activated: true, Limits: LogRequestLimits{URILength: 64, UserAgentLength: 32, RefererLength: 64, RemoteIPLength: 15}}
	if err := validateRequestLog(&validCfg); err != nil {
		t.Errorf("valid case failed: %v", err)
	}
	if err := validateRequestLog(&LogRequest{Activated: false}); err != nil {
		t.Errorf("disabled case failed: %v", err)
	}

	invalidCases := []LogRequest{
		{Activated: true, Limits: LogRequestLimits{URILength: 63, UserAgentLength: 32, RefererLength: 64, RemoteIPLength: 15}},
		{Activated: true, Limits: LogRequestLimits{URILength: 64, UserAgentLength: 31, RefererLength: 64, RemoteIPLength: 15}},
		{Activated: true, Limits: LogRequestLimits{URILength: 64, UserAgentLength: 32, RefererLength: 63, RemoteIPLength: 15}},
		{Activated: true, Limits: LogRequestLimits{URILength: 64, UserAgentLength: 32, RefererLength: 64, RemoteIPLength: 14}},
	}
	for _, cfg := range invalidCases {
		if err := validateRequestLog(&cfg); err == nil {
			t.Errorf("validateRequestLog(%+v) expected error, got nil", cfg)
		}
	}
}
