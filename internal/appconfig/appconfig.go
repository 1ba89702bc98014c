// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/evalboard/internal/evalreport"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultListenAddr is where `evalboard serve` listens when nothing is configured.
	DefaultListenAddr = "127.0.0.1:8080"
	// defaultLogFile is the log written next to the working directory.
	defaultLogFile = "evalboard.log"
)

// Config represents the top-level application configuration.
type Config struct {
	ReportPath    string            `json:"reportPath" mapstructure:"reportPath"`
	LogFile       string            `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug         bool              `json:"debug" mapstructure:"debug"`
	JSONMode      bool              `json:"jsonMode" mapstructure:"jsonMode"`
	PreviewLimit  int               `json:"previewLimit,omitempty" mapstructure:"previewLimit"`
	PreviewWidth  int               `json:"previewWidth,omitempty" mapstructure:"previewWidth"`
	TokensPerCase int               `json:"tokensPerCase,omitempty" mapstructure:"tokensPerCase"`
	ListenAddr    string            `json:"listenAddr,omitempty" mapstructure:"listenAddr"`
	Views         []evalreport.Rule `json:"views,omitempty" mapstructure:"views"`
	ConfigPath    string            `json:"-" mapstructure:"-"`
}

// Defaults returns a Config with every setting at its stock value.
func Defaults() Config {
	return Config{
		ReportPath:    evalreport.DefaultReportPath,
		LogFile:       defaultLogFile,
		PreviewLimit:  evalreport.DefaultPreviewLimit,
		PreviewWidth:  evalreport.DefaultPreviewWidth,
		TokensPerCase: evalreport.DefaultTokensPerCase,
		ListenAddr:    DefaultListenAddr,
	}
}

// ReportFilePath returns the report location, applying the default if not set.
func (c Config) ReportFilePath() string {
	if p := strings.TrimSpace(c.ReportPath); p != "" {
		return p
	}
	return evalreport.DefaultReportPath
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	if a := strings.TrimSpace(c.ListenAddr); a != "" {
		return a
	}
	return DefaultListenAddr
}

// ReportSource returns the source the engine should read from.
func (c Config) ReportSource() evalreport.FileSource {
	return evalreport.NewFileSource(c.ReportFilePath())
}

// Options converts the display settings into engine options. Unset or
// non-positive values fall back to the defaults.
func (c Config) Options() evalreport.Options {
	opts := evalreport.DefaultOptions()
	if c.PreviewLimit > 0 {
		opts.PreviewLimit = c.PreviewLimit
	}
	if c.PreviewWidth > 0 {
		opts.PreviewWidth = c.PreviewWidth
	}
	if c.TokensPerCase > 0 {
		opts.TokensPerCase = c.TokensPerCase
	}
	if len(c.Views) > 0 {
		opts.Views = append([]evalreport.Rule(nil), c.Views...)
	}
	return opts
}

// Validate checks settings that cannot be defaulted.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Views))
	for _, v := range c.Views {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		key := strings.ToLower(v.Name)
		if seen[key] {
			return fmt.Errorf("invalid configuration: duplicate view %q", v.Name)
		}
		seen[key] = true
	}
	return nil
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Defaults()
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
