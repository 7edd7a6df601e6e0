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

	if len(cfg.Files) == 0 {
		cfg.Files = splitList(os.Getenv("ENVLOAD_FILES"))
	}
	if cfg.Format == "" {
		cfg.Format = strings.ToLower(strings.TrimSpace(os.Getenv("ENVLOAD_FORMAT")))
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = os.Getenv("ENVLOAD_OUTPUT")
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.MissingOK, "ENVLOAD_MISSING_OK")
	setBool(&cfg.SingleQuotes, "ENVLOAD_SINGLE_QUOTES")
	setBool(&cfg.Verbose, "VERBOSE")
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}
