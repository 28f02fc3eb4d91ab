package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes environment overrides, e.g. DRAFTCHECK_SERVER_URL.
const EnvPrefix = "DRAFTCHECK"

// Manager owns the effective configuration: defaults, then config file, then
// DRAFTCHECK_* environment, then values pinned with Set.
type Manager struct {
	v *viper.Viper

	mu        sync.RWMutex
	current   *Config
	listeners []func(*Config)
	logger    *slog.Logger
}

// NewManager loads configuration. With an empty cfgFile, config.yaml is
// looked up in the working directory and then in searchDirs; a missing file
// is not an error.
func NewManager(cfgFile string, searchDirs ...string) (*Manager, error) {
	m := &Manager{v: viper.New(), logger: slog.Default()}
	v := m.v

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		for _, dir := range searchDirs {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := m.decode()
	if err != nil {
		return nil, err
	}
	m.current = cfg
	return m, nil
}

func defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"server_url":                 d.ServerURL,
		"token":                      d.Token,
		"language":                   d.Language,
		"assignment_id":              d.AssignmentID,
		"timeout_seconds":            d.TimeoutSeconds,
		"read_retries":               d.ReadRetries,
		"progress.phase_interval_ms": d.Progress.PhaseIntervalMS,
		"progress.dots_interval_ms":  d.Progress.DotsIntervalMS,
	}
}

func (m *Manager) decode() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// SetLogger sets the logger used to report reloads.
func (m *Manager) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	m.mu.Lock()
	m.logger = logger
	m.mu.Unlock()
}

// Set pins key to value above every other source, including later file
// reloads. Used for command-line overrides such as --server.
func (m *Manager) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v.Set(key, value)
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.current = cfg
	return nil
}

// Get returns the current configuration. Callers must treat it as read-only;
// a reload replaces the pointer rather than mutating it.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// File returns the config file in use, or "" when running on defaults.
func (m *Manager) File() string {
	return m.v.ConfigFileUsed()
}

// OnChange registers fn to run after each successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// WatchConfig reloads the file whenever it changes on disk. A reload that
// fails to decode or validate is logged and the previous config stays in
// effect.
func (m *Manager) WatchConfig() {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		m.reload(e.Name)
	})
	m.v.WatchConfig()
}

func (m *Manager) reload(file string) {
	m.mu.Lock()
	logger := m.logger
	cfg, err := m.decode()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		m.mu.Unlock()
		logger.Warn("ignoring config reload", "file", file, "error", err)
		return
	}
	m.current = cfg
	listeners := append([]func(*Config){}, m.listeners...)
	m.mu.Unlock()

	logger.Info("config reloaded", "file", file)
	for _, fn := range listeners {
		fn(cfg)
	}
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// ResolveEnvVars expands ${ENV_VAR} references. Unset variables expand to "".
func ResolveEnvVars(value string) string {
	return envRef.ReplaceAllStringFunc(value, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

const defaultHeader = `# draftcheck configuration
#
# token may reference an environment variable with ${NAME}; the default reads
# DRAFTCHECK_API_TOKEN, which can also live in ~/.draftcheck/.env.
# Any key can be overridden with DRAFTCHECK_<KEY>, e.g. DRAFTCHECK_SERVER_URL.

`

// WriteDefault writes the default configuration, with a usage header, to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(defaultHeader), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
