package promptrelay

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the knobs shared by the backend and front-end sides.
// Precedence, lowest to highest: defaults, config file, environment.
type Config struct {
	SocketPath             string   `yaml:"socket_path"`
	FrontendCommand        string   `yaml:"frontend_command"`
	ExchangeTimeoutSeconds int      `yaml:"exchange_timeout_seconds"`
	EventNames             []string `yaml:"event_names"`
}

func DefaultConfig() Config {
	return Config{
		SocketPath:             DefaultSocketPath(),
		FrontendCommand:        DefaultFrontendCommand,
		ExchangeTimeoutSeconds: int(DefaultExchangeTimeout / time.Second),
		EventNames:             DefaultEventNames(),
	}
}

// LoadConfig reads path (or, when path is empty, $PROMPTRELAY_CONFIG, then
// the user config dir) on top of the defaults, then applies environment
// overrides. A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path == "" {
		path = os.Getenv("PROMPTRELAY_CONFIG")
	}
	if path == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(configDir, "promptrelay", "config.yaml")
		}
	}

	if path != "" {
		payload, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(payload, &config); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	config.applyEnv()
	return config.withDefaults(), nil
}

func (config *Config) applyEnv() {
	if socket := os.Getenv("PROMPTRELAY_SOCKET"); socket != "" {
		config.SocketPath = socket
	}
	if command := os.Getenv("PROMPTRELAY_UI_COMMAND"); command != "" {
		config.FrontendCommand = command
	}
	if seconds := os.Getenv("PROMPTRELAY_TIMEOUT_SECONDS"); seconds != "" {
		if parsed, err := strconv.Atoi(seconds); err == nil && parsed > 0 {
			config.ExchangeTimeoutSeconds = parsed
		}
	}
}

func (config Config) withDefaults() Config {
	defaults := DefaultConfig()
	if config.SocketPath == "" {
		config.SocketPath = defaults.SocketPath
	}
	if config.FrontendCommand == "" {
		config.FrontendCommand = defaults.FrontendCommand
	}
	if config.ExchangeTimeoutSeconds <= 0 {
		config.ExchangeTimeoutSeconds = defaults.ExchangeTimeoutSeconds
	}
	if len(config.EventNames) == 0 {
		config.EventNames = defaults.EventNames
	}
	return config
}

// ExchangeTimeout returns the configured client-side exchange bound.
func (config Config) ExchangeTimeout() time.Duration {
	return time.Duration(config.ExchangeTimeoutSeconds) * time.Second
}
