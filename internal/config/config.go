// Package config loads dnsstub settings.
//
// Values are layered: built-in defaults, then the optional YAML file, then
// environment overrides, then command-line flags (applied by the caller
// before Validate). The nameserver falls back to the system resolv.conf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/miekg/dns"
	"gopkg.in/yaml.v3"

	"github.com/jroosing/dnsstub/internal/helpers"
)

// ErrConfiguration is wrapped by every error this package returns.
var ErrConfiguration = errors.New("configuration error")

// Defaults.
const (
	EnvConfigPath     = "DNSSTUB_CONFIG"
	DefaultResolvConf = "/etc/resolv.conf"
	DefaultTimeout    = "5s"
	DefaultRecvSize   = 512

	minRecvSize = 12 // one DNS header
	maxRecvSize = 65535
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Resolver: ResolverConfig{
			ResolvConf:     DefaultResolvConf,
			Timeout:        DefaultTimeout,
			RecvSize:       DefaultRecvSize,
			VerifyResponse: true,
		},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
			ExtraFields:      map[string]string{},
		},
	}
}

// ResolveConfigPath returns the flag value when set, else $DNSSTUB_CONFIG.
func ResolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. An empty path yields the defaults. The result is
// validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %w", ErrConfiguration, path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides reads DNSSTUB_* variables and LOG_LEVEL.
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("DNSSTUB_NAMESERVER")); v != "" {
		cfg.Resolver.Nameserver = v
	}
	if v := strings.TrimSpace(os.Getenv("DNSSTUB_RESOLV_CONF")); v != "" {
		cfg.Resolver.ResolvConf = v
	}
	if v := strings.TrimSpace(os.Getenv("DNSSTUB_TIMEOUT")); v != "" {
		cfg.Resolver.Timeout = v
	}
	if v := strings.TrimSpace(os.Getenv("DNSSTUB_RECV_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Resolver.RecvSize = n
		}
	}
	if v, ok := os.LookupEnv("DNSSTUB_VERIFY_RESPONSE"); ok {
		cfg.Resolver.VerifyResponse = envBool(v, cfg.Resolver.VerifyResponse)
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
}

// envBool parses common boolean spellings; anything else yields def.
func envBool(raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.Resolver.Timeout == "" {
		cfg.Resolver.Timeout = DefaultTimeout
	}
	d, err := time.ParseDuration(cfg.Resolver.Timeout)
	if err != nil {
		return fmt.Errorf("%w: resolver.timeout: %w", ErrConfiguration, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: resolver.timeout must be positive, got %s", ErrConfiguration, cfg.Resolver.Timeout)
	}

	if cfg.Resolver.RecvSize <= 0 {
		cfg.Resolver.RecvSize = DefaultRecvSize
	}
	cfg.Resolver.RecvSize = helpers.ClampInt(cfg.Resolver.RecvSize, minRecvSize, maxRecvSize)

	if cfg.Resolver.SocketReceiveBuffer < 0 {
		return fmt.Errorf("%w: resolver.socket_receive_buffer must not be negative", ErrConfiguration)
	}
	if cfg.Resolver.ResolvConf == "" {
		cfg.Resolver.ResolvConf = DefaultResolvConf
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}
	return nil
}

// TimeoutDuration returns the parsed resolver timeout. Call after Validate.
func (cfg *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(cfg.Resolver.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// NameserverAddr returns the nameserver as host:port. The explicit
// resolver.nameserver wins; otherwise the first nameserver listed in
// resolver.resolv_conf is used together with its port.
func (cfg *Config) NameserverAddr() (string, error) {
	if ns := strings.TrimSpace(cfg.Resolver.Nameserver); ns != "" {
		addr, err := helpers.WithDefaultPort(ns, helpers.DefaultDNSPort)
		if err != nil {
			return "", fmt.Errorf("%w: resolver.nameserver: %w", ErrConfiguration, err)
		}
		return addr, nil
	}

	path := cfg.Resolver.ResolvConf
	if path == "" {
		path = DefaultResolvConf
	}
	cc, err := dns.ClientConfigFromFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: no nameserver configured and %s unreadable: %w", ErrConfiguration, path, err)
	}
	if len(cc.Servers) == 0 {
		return "", fmt.Errorf("%w: no nameserver configured and none listed in %s", ErrConfiguration, path)
	}
	port := cc.Port
	if port == "" {
		port = helpers.DefaultDNSPort
	}
	addr, err := helpers.WithDefaultPort(cc.Servers[0], port)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}
	return addr, nil
}
