package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Input         string `toml:"input"`
	LogLevel      string `toml:"log_level"`
	PackedRows    bool   `toml:"packed_rows"`
	PrintMetadata bool   `toml:"print_metadata"`
	PrintBitmap   bool   `toml:"print_bitmap"`

	// [outputs]
	Outputs struct {
		RotateCW  string `toml:"rotate_cw"`
		RotateCCW string `toml:"rotate_ccw"`
		Blur      string `toml:"blur"`
	} `toml:"outputs"`
}

var (
	ErrNoConfigFile = errors.New("no configuration file specified")

	DefaultConfig = Config{}
)

func init() {
	cf := Config{
		Input:    "images/input.bmp",
		LogLevel: "INFO",
	}

	cf.Outputs.RotateCW = "images/rotate_cw.bmp"
	cf.Outputs.RotateCCW = "images/rotate_ccw.bmp"
	cf.Outputs.Blur = "images/blur.bmp"

	DefaultConfig = cf
}

func NewConfig() *Config {
	cf := DefaultConfig
	return &cf
}

// NewConfigFromFile loads confFile, falling back to confEnv when confFile
// is empty. Keys missing from the file keep their defaults.
func NewConfigFromFile(confFile string, confEnv string) (*Config, error) {
	if confFile == "" {
		confFile = confEnv
	}
	if confFile == "" {
		return nil, ErrNoConfigFile
	}
	if _, err := os.Stat(confFile); err != nil {
		return nil, fmt.Errorf("config %s: %w", confFile, err)
	}

	cf := NewConfig()
	if _, err := toml.DecodeFile(confFile, cf); err != nil {
		return nil, fmt.Errorf("config %s: %w", confFile, err)
	}
	if err := cf.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", confFile, err)
	}
	return cf, nil
}

func (cf *Config) Validate() error {
	if cf.Input == "" {
		return errors.New("input path is empty")
	}
	if cf.Outputs.RotateCW == "" || cf.Outputs.RotateCCW == "" || cf.Outputs.Blur == "" {
		return errors.New("every output path must be set")
	}
	if _, err := cf.Level(); err != nil {
		return err
	}
	return nil
}

func (cf *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(strings.ToLower(cf.LogLevel))
}

// Apply configures the standard logrus logger.
func (cf *Config) Apply() error {
	level, err := cf.Level()
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
