package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/Zuo-Peng/zip/internal/chat"
	"github.com/Zuo-Peng/zip/internal/engine"
)

type EngineConfig struct {
	ServerURL   string  `toml:"server_url"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

type Config struct {
	Engine         EngineConfig `toml:"engine"`
	DBPath         string       `toml:"db_path"`
	LogFile        string       `toml:"log_file"`
	LogLevel       string       `toml:"log_level"`
	PromptTemplate string       `toml:"prompt_template"`
	DefaultWindow  int          `toml:"default_window"`
	SeedSamples    bool         `toml:"seed_samples"`
	Transcript     string       `toml:"transcript"`
	LocalAuthor    string       `toml:"local_author"`

	// Path is the config file that was read, empty if none existed.
	Path string `toml:"-"`
}

// Load reads ~/.config/zip/config.toml over the defaults, then applies
// .env and ZIP_* environment overrides.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(home, ".config", "zip", "config.toml"), home)
}

// LoadFrom is Load with an explicit config file and home directory.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := defaults(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
		cfg.Path = cfgPath
	}

	// .env is optional
	_ = godotenv.Load()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// expand ~ in paths
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)
	cfg.PromptTemplate = expandHome(cfg.PromptTemplate, home)
	cfg.Transcript = expandHome(cfg.Transcript, home)

	if cfg.DefaultWindow <= 0 {
		return nil, fmt.Errorf("default_window must be > 0, got %d", cfg.DefaultWindow)
	}
	if strings.TrimSpace(cfg.LocalAuthor) == "" {
		cfg.LocalAuthor = chat.LocalAuthor
	}
	return cfg, nil
}

func defaults(home string) *Config {
	return &Config{
		Engine: EngineConfig{
			ServerURL:   engine.DefaultServerURL,
			Model:       engine.DefaultModel,
			MaxTokens:   engine.DefaultMaxTokens,
			Temperature: 0.2,
		},
		DBPath:        filepath.Join(home, ".config", "zip", "zip.db"),
		LogFile:       filepath.Join(home, ".config", "zip", "zip.log"),
		LogLevel:      "info",
		DefaultWindow: 100,
		SeedSamples:   true,
		LocalAuthor:   chat.LocalAuthor,
	}
}

func applyEnv(cfg *Config) error {
	cfg.Engine.ServerURL = getEnv("ZIP_SERVER_URL", cfg.Engine.ServerURL)
	cfg.Engine.Model = getEnv("ZIP_MODEL", cfg.Engine.Model)
	cfg.DBPath = getEnv("ZIP_DB_PATH", cfg.DBPath)
	cfg.LogFile = getEnv("ZIP_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("ZIP_LOG_LEVEL", cfg.LogLevel)
	cfg.PromptTemplate = getEnv("ZIP_PROMPT_TEMPLATE", cfg.PromptTemplate)
	cfg.Transcript = getEnv("ZIP_TRANSCRIPT", cfg.Transcript)
	cfg.LocalAuthor = getEnv("ZIP_LOCAL_AUTHOR", cfg.LocalAuthor)

	if v := os.Getenv("ZIP_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ZIP_MAX_TOKENS: %w", err)
		}
		cfg.Engine.MaxTokens = n
	}
	if v := os.Getenv("ZIP_DEFAULT_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ZIP_DEFAULT_WINDOW: %w", err)
		}
		cfg.DefaultWindow = n
	}
	if v := os.Getenv("ZIP_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ZIP_TEMPERATURE: %w", err)
		}
		cfg.Engine.Temperature = f
	}
	if v := os.Getenv("ZIP_SEED_SAMPLES"); v != "" {
		cfg.SeedSamples = v == "true" || v == "1"
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
