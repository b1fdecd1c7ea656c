package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// YAMLParser is a koanf parser backed by yaml.v3.
type YAMLParser struct{}

// Unmarshal parses YAML bytes into a nested map.
func (p *YAMLParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]interface{}{}
	}
	return out, nil
}

// Marshal renders a nested map as YAML.
func (p *YAMLParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return yaml.Marshal(o)
}

// parserFor picks a koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser(), nil
	case ".yml", ".yaml":
		return &YAMLParser{}, nil
	default:
		return nil, fmt.Errorf("%s: unsupported file type (use .json, .yml or .yaml)", path)
	}
}
