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
	Files        []string `yaml:"files" json:"files"`
	MissingOK    bool     `yaml:"missingOK" json:"missingOK"`
	SingleQuotes bool     `yaml:"singleQuotes" json:"singleQuotes"`
	Format       string   `yaml:"format" json:"format"`
	Output       string   `yaml:"output" json:"output"`
	Verbose      bool     `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig. Relative entries in
// files are resolved against the directory holding the config file.
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
	base := filepath.Dir(path)
	for i, f := range fc.Files {
		if f != "" && !filepath.IsAbs(f) {
			fc.Files[i] = filepath.Join(base, f)
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc into cfg for any fields that are
// still unset after flags and environment have been applied.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if len(cfg.Files) == 0 && len(fc.Files) > 0 {
		cfg.Files = append([]string{}, fc.Files...)
	}
	if !cfg.MissingOK && fc.MissingOK {
		cfg.MissingOK = true
	}
	if !cfg.SingleQuotes && fc.SingleQuotes {
		cfg.SingleQuotes = true
	}
	if cfg.Format == "" && fc.Format != "" {
		cfg.Format = strings.ToLower(fc.Format)
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal validation and fills the default format.
func ValidateConfig(cfg *Config) error {
	if len(cfg.Files) == 0 {
		return errors.New("config: at least one env file is required (or set ENVLOAD_FILES)")
	}
	if cfg.Format == "" {
		cfg.Format = FormatDotenv
	}
	switch cfg.Format {
	case FormatDotenv, FormatJSON, FormatYAML, FormatExport:
	default:
		return fmt.Errorf("config: unknown format %q", cfg.Format)
	}
	if len(cfg.Command) > 0 && strings.TrimSpace(cfg.Command[0]) == "" {
		return errors.New("config: empty command")
	}
	return nil
}
