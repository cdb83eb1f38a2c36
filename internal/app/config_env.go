package app

import (
	"os"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Dir == "" {
		cfg.Dir = os.Getenv("URLDECK_DIR")
	}
	if cfg.Language == "" {
		cfg.Language = os.Getenv("URLDECK_LANG")
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = os.Getenv("URLDECK_REPORT")
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				*dst = true
			}
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.KeepGoing, "KEEP_GOING")
	setBool(&cfg.SkipProcessed, "SKIP_PROCESSED")
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment
// variables when they are set. Env beats the config file; flags are applied
// after this and stay highest.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := os.Getenv("URLDECK_DIR"); v != "" {
		cfg.Dir = v
	}
	if v := os.Getenv("URLDECK_LANG"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("URLDECK_REPORT"); v != "" {
		cfg.ReportPath = v
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.KeepGoing, "KEEP_GOING")
	setBool(&cfg.SkipProcessed, "SKIP_PROCESSED")
}
