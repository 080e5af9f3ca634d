package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// ErrNoBotToken is returned by RequireBotToken when no token is configured
var ErrNoBotToken = errors.New("BLACKJACK_BOT_TOKEN is not set")

// Balance stores the terminal game can use
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config is loaded from defaults, then config.yaml, then the environment
type Config struct {
	BotToken      string        `yaml:"botToken" envconfig:"bot_token"`
	DatabasePath  string        `yaml:"databasePath" envconfig:"database_path"`
	SavePath      string        `yaml:"savePath" envconfig:"save_path"`
	Store         string        `yaml:"store" envconfig:"store"`
	StartBalance  float64       `yaml:"startBalance" envconfig:"start_balance"`
	DefaultBet    float64       `yaml:"defaultBet" envconfig:"default_bet"`
	MinBet        float64       `yaml:"minBet" envconfig:"min_bet"`
	MaxBet        float64       `yaml:"maxBet" envconfig:"max_bet"`
	Seed          int64         `yaml:"seed" envconfig:"seed"`
	LogLevel      string        `yaml:"logLevel" envconfig:"log_level"`
	LogFile       string        `yaml:"logFile" envconfig:"log_file"`
	StrictActions bool          `yaml:"strictActions" envconfig:"strict_actions"`
	ActionTimeout time.Duration `yaml:"actionTimeout" envconfig:"action_timeout"`
	SpinnerDelay  time.Duration `yaml:"spinnerDelay" envconfig:"spinner_delay"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		DatabasePath:  "./blackjack.db",
		SavePath:      "./save.json",
		Store:         StoreFile,
		StartBalance:  1000,
		DefaultBet:    100,
		MinBet:        1,
		MaxBet:        10000,
		LogLevel:      "info",
		ActionTimeout: 5 * time.Minute,
		SpinnerDelay:  1500 * time.Millisecond,
	}
}

// Load reads .env into the environment, then the YAML file named by
// BLACKJACK_CONFIG_FILE (default config.yaml, skipped if missing), then
// BLACKJACK_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	configFile := os.Getenv("BLACKJACK_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	if err := loadFile(configFile, &cfg); err != nil {
		return nil, err
	}

	if err := envconfig.Process("blackjack", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// Validate checks the bet limits, the action timeout, the store and the log level
func (c *Config) Validate() error {
	if c.MinBet < 0 || c.MaxBet < 0 {
		return fmt.Errorf("bet limits must not be negative")
	}

	if c.MaxBet > 0 && c.MinBet > c.MaxBet {
		return fmt.Errorf("min bet %v is above max bet %v", c.MinBet, c.MaxBet)
	}

	if c.StartBalance < 0 {
		return fmt.Errorf("start balance must not be negative")
	}

	if c.ActionTimeout <= 0 {
		return fmt.Errorf("action timeout must be positive, got %v", c.ActionTimeout)
	}

	if c.Store != StoreFile && c.Store != StoreSQLite {
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// RequireBotToken returns ErrNoBotToken if the bot token is empty
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return ErrNoBotToken
	}

	return nil
}

// Logger returns a logrus logger at the configured level
func (c *Config) Logger() *logrus.Logger {
	l := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	l.SetLevel(level)
	return l
}
