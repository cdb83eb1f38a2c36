package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Dir           string `yaml:"dir" json:"dir"`
	Language      string `yaml:"language" json:"language"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	KeepGoing     bool   `yaml:"keepGoing" json:"keepGoing"`
	SkipProcessed bool   `yaml:"skipProcessed" json:"skipProcessed"`
	Report        string `yaml:"report" json:"report"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are still unset or at their defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.Dir == "" || cfg.Dir == dirDefault) && fc.Dir != "" {
		cfg.Dir = fc.Dir
	}
	if (cfg.Language == "" || cfg.Language == languageDefault) && fc.Language != "" {
		cfg.Language = fc.Language
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if !cfg.KeepGoing && fc.KeepGoing {
		cfg.KeepGoing = true
	}
	if !cfg.SkipProcessed && fc.SkipProcessed {
		cfg.SkipProcessed = true
	}
	if cfg.ReportPath == "" && fc.Report != "" {
		cfg.ReportPath = fc.Report
	}
}

// ValidateConfig performs minimal validation of required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Dir) == "" {
		return errors.New("config: dir is required")
	}
	if r := strings.TrimSpace(cfg.ReportPath); r != "" {
		if _, ok := reportFormats[strings.ToLower(filepath.Ext(r))]; !ok {
			return fmt.Errorf("config: unsupported report format %q", filepath.Ext(r))
		}
	}
	return nil
}
