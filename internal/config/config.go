package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"netra-dburl/internal/dburl"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Transport string

const (
	TransportStdio      Transport = "stdio"
	TransportSSE        Transport = "sse"
	TransportStreamable Transport = "streamable"
)

// Config holds server settings. The database configuration itself is not
// here: the resolver engine consumes a raw snapshot of the process
// environment (see Snapshot), never a pre-assembled connection string.
type Config struct {
	Transport            Transport `mapstructure:"transport"`
	HTTPAddr             string    `mapstructure:"http_addr"`
	HTTPPort             int       `mapstructure:"http_port"`
	HTTPPath             string    `mapstructure:"http_path"`
	AppName              string    `mapstructure:"app_name"`
	LogLevel             string    `mapstructure:"log_level"`
	AllowProbe           bool      `mapstructure:"allow_probe"`
	ProbeSecret          string    `mapstructure:"probe_secret"`
	ProbeTimeoutSeconds  int       `mapstructure:"probe_timeout_seconds"`
	ProbeCacheTTLSeconds int       `mapstructure:"probe_cache_ttl_seconds"`
	ProbesPerMinute      int       `mapstructure:"probes_per_minute"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("transport", string(TransportStdio))
	v.SetDefault("http_addr", "127.0.0.1")
	v.SetDefault("http_port", 8765)
	v.SetDefault("http_path", "/mcp")
	v.SetDefault("app_name", "netra-dburl")
	v.SetDefault("log_level", "info")
	v.SetDefault("allow_probe", false)
	v.SetDefault("probe_secret", "")
	v.SetDefault("probe_timeout_seconds", 5)
	v.SetDefault("probe_cache_ttl_seconds", 15)
	v.SetDefault("probes_per_minute", 6)
}

func Load() (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("NETRA_DBURL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Flags override (parse early to locate config file)
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	var cfgPathFlag string
	fs.StringVarP(&cfgPathFlag, "config", "c", "", "Config file path (yaml|json|toml)")
	fs.String("transport", string(TransportStdio), "Transport: stdio|sse|streamable")
	fs.String("http-addr", "127.0.0.1", "HTTP listen address (sse/streamable)")
	fs.Int("http-port", 8765, "HTTP listen port (sse/streamable)")
	fs.String("http-path", "/mcp", "HTTP endpoint path (sse/streamable)")
	fs.String("app-name", "netra-dburl", "Application name sent to the server")
	fs.String("log-level", "info", "Log level")
	fs.Bool("allow-probe", false, "Allow connectivity probe tools")
	fs.String("probe-secret", "", "Probe approval secret (required if allow-probe)")
	fs.Int("probe-timeout-seconds", 5, "Connectivity probe timeout in seconds")
	fs.Int("probe-cache-ttl-seconds", 15, "Probe result cache TTL in seconds")
	fs.Int("probes-per-minute", 6, "Probe rate limit per minute")

	_ = fs.Parse(os.Args[1:])

	// Config file resolution
	cfgPath := cfgPathFlag
	if cfgPath == "" {
		cfgPath = os.Getenv("NETRA_DBURL_CONFIG")
	}
	if cfgPath != "" {
		if err := readConfigFile(v, cfgPath); err != nil {
			return Config{}, err
		}
	} else {
		_ = readDefaultConfig(v) // best-effort
	}

	// Flags override config
	_ = v.BindPFlags(fs)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Transport {
	case TransportStdio, TransportSSE, TransportStreamable:
	default:
		return fmt.Errorf("config: transport must be one of [%s,%s,%s]", TransportStdio, TransportSSE, TransportStreamable)
	}
	if cfg.AllowProbe && cfg.ProbeSecret == "" {
		return errors.New("config: probe_secret is required when allow_probe=true")
	}
	if cfg.ProbeTimeoutSeconds <= 0 {
		return errors.New("config: probe_timeout_seconds must be > 0")
	}
	if cfg.ProbeCacheTTLSeconds < 0 {
		return errors.New("config: probe_cache_ttl_seconds must be >= 0")
	}
	if cfg.ProbesPerMinute <= 0 {
		return errors.New("config: probes_per_minute must be > 0")
	}
	return nil
}

// engineKeys are the exact environment keys the resolver engine consumes.
var engineKeys = []string{
	dburl.KeyEnvironment,
	dburl.KeyHost,
	dburl.KeyPort,
	dburl.KeyUser,
	dburl.KeyPassword,
	dburl.KeyDatabase,
	dburl.KeyRunningInDocker,
	dburl.KeyDockerContainer,
	dburl.KeyIsContainer,
	dburl.KeyAllowLocalhostDB,
}

// Snapshot assembles the engine's raw configuration map from the process
// environment. Keys are exact and case-sensitive, and absent keys stay
// absent from the map: the engine treats "unset" and "set to empty"
// differently, which viper's case-folded key handling would destroy.
func Snapshot() map[string]string {
	m := make(map[string]string, len(engineKeys))
	for _, key := range engineKeys {
		if v, ok := os.LookupEnv(key); ok {
			m[key] = v
		}
	}
	return m
}

// Merge overlays per-call overrides on a snapshot without mutating it.
func Merge(base, overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return base
	}
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func readConfigFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func readDefaultConfig(v *viper.Viper) error {
	paths := defaultConfigCandidates()
	exts := []string{"yaml", "yml", "json", "toml"}
	for _, base := range paths {
		for _, ext := range exts {
			candidate := base + "." + ext
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read default config %s: %w", candidate, err)
				}
				return nil
			}
		}
	}
	return nil
}

func defaultConfigCandidates() []string {
	var out []string
	cwd, _ := os.Getwd()
	if cwd != "" {
		out = append(out,
			filepath.Join(cwd, "netra-dburl"),
			filepath.Join(cwd, "config", "netra-dburl"),
		)
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			xdg = filepath.Join(home, ".config")
		}
	}
	if xdg != "" {
		out = append(out, filepath.Join(xdg, "netra-dburl", "config"))
	}
	return out
}
