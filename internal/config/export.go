package config

import (
	"encoding/json"
	"fmt"

	"github.com/adytools/adyprocessor/internal/channel"
	"gopkg.in/yaml.v3"
)

// Export formats accepted by MarshalOverrides.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// MarshalOverrides renders table as an overrides file that LoadOverrides
// accepts.
func MarshalOverrides(table *channel.Table, format string) ([]byte, error) {
	of := overridesFile{Channels: table.Map()}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(of, "", "\t")
		if err != nil {
			return nil, fmt.Errorf("encoding overrides as JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(of)
		if err != nil {
			return nil, fmt.Errorf("encoding overrides as YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
