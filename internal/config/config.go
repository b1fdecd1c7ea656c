// Package config loads adyprocessor settings and external channel override
// files. Settings are layered: defaults, then an optional settings file, then
// command-line flags applied by the caller.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPath is the settings file looked up in the working directory.
const DefaultConfigPath = ".adyprocessor.yml"

// Configuration represents the adyprocessor settings.
type Configuration struct {
	OverridesFile   string `koanf:"overrides_file"`
	ShowProgress    bool   `koanf:"show_progress"`
	RemoveNonCustom bool   `koanf:"remove_non_custom"`
	Preview         string `koanf:"preview" validate:"required,oneof=patch diff"`
}

// Load loads settings from defaults and the settings file at path.
// A missing file is not an error; the defaults apply.
func Load(path string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := loadFile(k, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFile loads a JSON or YAML file into k, reporting YAML syntax errors
// with their line and column.
func loadFile(k *koanf.Koanf, path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return err
	}
	if _, ok := parser.(*YAMLParser); ok {
		if err := ValidateYAMLSyntax(path); err != nil {
			return err
		}
	}
	return k.Load(file.Provider(path), parser)
}
