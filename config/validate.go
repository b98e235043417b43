package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/caasmo/webjarcors/cache/ristretto"
)

func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateWebjars(&cfg.Webjars); err != nil {
		return fmt.Errorf("webjars config validation failed: %w", err)
	}
	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}
	if err := validateEndpoints(cfg); err != nil {
		return fmt.Errorf("endpoint config validation failed: %w", err)
	}
	if err := validateStats(&cfg.Stats); err != nil {
		return fmt.Errorf("stats config validation failed: %w", err)
	}
	return nil
}

// validateServer checks the Server configuration section.
// It ensures the Addr field is not empty and contains a valid host:port or :port format.
// If only a port is provided (e.g., ":8080"), it defaults the host to "localhost".
//
// Allowed formats:
//   - "host:port" (e.g., "example.com:8080", "127.0.0.1:8080", "[::1]:8080")
//   - ":port"     (e.g., ":8080" becomes "localhost:8080")
func validateServer(server *Server) error {
	if server.Addr == "" {
		return fmt.Errorf("server address (Addr) cannot be empty")
	}

	host, port, err := net.SplitHostPort(server.Addr)
	if err != nil {
		return fmt.Errorf("invalid server address format '%s': %w", server.Addr, err)
	}
	if port == "" {
		return fmt.Errorf("server address '%s' must include a port", server.Addr)
	}
	if host == "" {
		host = "localhost"
	}
	if err := validateServerPort(port); err != nil {
		return fmt.Errorf("invalid port in server address '%s': %w", server.Addr, err)
	}
	server.Addr = net.JoinHostPort(host, port)

	if server.ShutdownGracefulTimeout.Duration <= 0 {
		return fmt.Errorf("shutdown graceful timeout must be positive")
	}
	return nil
}

// validateServerPort accepts an empty port or a number in 1-65535.
func validateServerPort(port string) error {
	if port == "" {
		return nil
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("port '%s' is not numeric", port)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port %d out of range", n)
	}
	return nil
}

func validateWebjars(w *Webjars) error {
	prefix := strings.Trim(w.Prefix, "/")
	if prefix == "" {
		return fmt.Errorf("prefix cannot be empty or root")
	}
	if strings.ContainsAny(prefix, ":*") {
		return fmt.Errorf("prefix '%s' must not contain route wildcards", w.Prefix)
	}
	w.Prefix = "/" + prefix

	if w.Root == "" {
		return fmt.Errorf("root directory cannot be empty")
	}
	if w.CacheLevel == "" {
		return nil
	}
	for _, level := range ristretto.Levels() {
		if level == w.CacheLevel {
			return nil
		}
	}
	return fmt.Errorf("unknown cache level '%s' (valid: %s)", w.CacheLevel, strings.Join(ristretto.Levels(), ", "))
}

func validateLog(l *Log) error {
	switch l.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format '%s' (valid: json, text)", l.Format)
	}
	return validateRequestLog(&l.Request)
}

func validateRequestLog(r *LogRequest) error {
	if !r.Activated {
		return nil
	}
	if r.Limits.URILength < 64 {
		return fmt.Errorf("uri_length must be at least 64")
	}
	if r.Limits.UserAgentLength < 32 {
		return fmt.Errorf("user_agent_length must be at least 32")
	}
	if r.Limits.RefererLength < 64 {
		return fmt.Errorf("referer_length must be at least 64")
	}
	if r.Limits.RemoteIPLength < 15 {
		return fmt.Errorf("remote_ip_length must be at least 15")
	}
	return nil
}

// validateEndpoints keeps the auxiliary endpoints out of the asset namespace.
func validateEndpoints(cfg *Config) error {
	if cfg.Webjars.Prefix == HealthEndpoint {
		return fmt.Errorf("webjars prefix '%s' is reserved for health", cfg.Webjars.Prefix)
	}
	seen := map[string]string{HealthEndpoint: "health"}
	check := func(name, endpoint string) error {
		if !strings.HasPrefix(endpoint, "/") {
			return fmt.Errorf("%s endpoint '%s' must start with '/'", name, endpoint)
		}
		if endpoint == cfg.Webjars.Prefix || strings.HasPrefix(endpoint, cfg.Webjars.Prefix+"/") {
			return fmt.Errorf("%s endpoint '%s' overlaps the webjars prefix", name, endpoint)
		}
		if other, ok := seen[endpoint]; ok {
			return fmt.Errorf("%s endpoint '%s' already used by %s", name, endpoint, other)
		}
		seen[endpoint] = name
		return nil
	}
	if cfg.Metrics.Activated {
		if err := check("metrics", cfg.Metrics.Endpoint); err != nil {
			return err
		}
	}
	if cfg.Stats.Activated {
		if err := check("stats", cfg.Stats.Endpoint); err != nil {
			return err
		}
	}
	return nil
}

func validateStats(s *Stats) error {
	if !s.Activated {
		return nil
	}
	if s.K <= 0 {
		return fmt.Errorf("k must be positive")
	}
	if s.WindowSize <= 0 {
		return fmt.Errorf("window_size must be positive")
	}
	if s.TickSize == 0 {
		return fmt.Errorf("tick_size must be positive")
	}
	return nil
}
