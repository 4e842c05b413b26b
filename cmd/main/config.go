package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/akerfield/namewright/pkg/namegen"
)

// ServerConfig holds the configuration for the management HTTP server.
type ServerConfig struct {
	ApiAddr      string `json:"api_addr"`
	DataDir      string `json:"data_dir"`
	DatabasePath string `json:"database_path"`
}

// LoggingConfig selects the log level and handler format.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // "text" or "json"
}

// GenerationConfig holds the defaults applied when a generation request or
// set definition leaves a field unset.
type GenerationConfig struct {
	Order        int    `json:"order"`
	Candidates   int    `json:"candidates"`
	MaxAttempts  int    `json:"max_attempts"`
	LengthMetric string `json:"length_metric"` // "runes" or "syllables"
}

// Config is the top-level configuration struct that aggregates all other
// configs. BannedWords is mirrored into the namegen registry at startup and
// by the words API, so the filter survives restarts.
type Config struct {
	Server      *ServerConfig     `json:"server_config"`
	Logging     *LoggingConfig    `json:"logging_config"`
	Generation  *GenerationConfig `json:"generation_config"`
	BannedWords []string          `json:"banned_words"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerConfig{
			ApiAddr:      ":7378",
			DataDir:      "./data",
			DatabasePath: "./data/namewright.db?_journal_mode=WAL&_busy_timeout=5000",
		},
		Logging: &LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Generation: &GenerationConfig{
			Order:        namegen.DefaultOrder,
			Candidates:   namegen.DefaultCandidates,
			MaxAttempts:  namegen.DefaultMaxAttempts,
			LengthMetric: "runes",
		},
		BannedWords: []string{},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Log a warning instead of failing, as the server can still run with defaults.
				fmt.Printf("warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// ConfigManager handles thread-safe access to the configuration and keeps
// the banned-word registry in sync with it.
type ConfigManager struct {
	config     *Config
	mu         sync.RWMutex
	configPath string
	logger     *slog.Logger
}

// NewConfigManager loads the config and initializes the manager.
func NewConfigManager(path string) (*ConfigManager, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return &ConfigManager{
		config:     cfg,
		configPath: path,
		// Log to stdout before the application-specific logger is set.
		logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})),
	}, nil
}

// SetLogger sets the logger. That's about it.
func (cm *ConfigManager) SetLogger(logger *slog.Logger) {
	cm.logger = logger
}

// Get returns a thread-safe copy of the current configuration.
func (cm *ConfigManager) Get() Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return *cm.config
}

// Update replaces the configuration, saves it to disk, and pushes the new
// banned-word list into the generation registry.
func (cm *ConfigManager) Update(newConfig Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	*cm.config = newConfig
	namegen.SetBannedWords(cm.config.BannedWords)

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err = atomic.WriteFile(cm.configPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// buildLogger constructs the application logger from the logging config.
func buildLogger(cfg *LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
