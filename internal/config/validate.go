package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/adytools/adyprocessor/internal/channel"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLSyntax checks if the YAML file has valid syntax.
// Returns nil if valid, or a ValidationError with line/column information if invalid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsPermission(err) {
			return &ValidationError{FilePath: filePath, Message: "permission denied"}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	// Empty file is valid - will use defaults
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		var typeError *yaml.TypeError
		if errors.As(err, &typeError) {
			return &ValidationError{
				FilePath: filePath,
				Message:  strings.Join(typeError.Errors, "; "),
			}
		}

		line, column := extractLineColumn(err.Error())
		return &ValidationError{
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  cleanYAMLError(err.Error()),
		}
	}

	return nil
}

// validateOverrides checks every channel override of a loaded file. Channels
// are checked in sorted order so the reported error is stable.
func validateOverrides(filePath string, overrides map[string]channel.ChannelOverride) error {
	if len(overrides) == 0 {
		return &ValidationError{FilePath: filePath, Field: "channels", Message: "no channels defined"}
	}

	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	validate := validator.New()
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return &ValidationError{FilePath: filePath, Field: "channels", Message: "channel id must not be empty"}
		}

		o := overrides[id]
		if err := validate.Struct(o); err != nil {
			return overrideValidationError(filePath, id, err)
		}
		if o.IsEmpty() {
			return &ValidationError{
				FilePath: filePath,
				Field:    "channels." + id,
				Message:  "override sets no fields",
			}
		}
	}
	return nil
}

// overrideValidationError turns the first validator failure into a
// ValidationError naming the file field, e.g. channels.FL.crossover_hz.
func overrideValidationError(filePath, id string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{FilePath: filePath, Field: "channels." + id, Message: err.Error()}
	}

	fe := fieldErrs[0]
	return &ValidationError{
		FilePath: filePath,
		Field:    "channels." + id + "." + fieldKey(fe.StructNamespace()),
		Message:  strings.TrimSpace(fmt.Sprintf("must be %s %s", ruleText(fe.Tag()), fe.Param())),
	}
}

// fieldKey maps a validator namespace such as
// "ChannelOverride.Corrections[2].FrequencyHz" onto file keys.
func fieldKey(namespace string) string {
	replacer := strings.NewReplacer(
		"ChannelOverride.", "",
		"CrossoverHz", "crossover_hz",
		"CorrectionLimitHz", "correction_limit_hz",
		"Corrections", "corrections",
		"FrequencyHz", "frequency_hz",
	)
	return replacer.Replace(namespace)
}

func ruleText(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "gte":
		return "at least"
	default:
		return tag
	}
}

// extractLineColumn attempts to extract line and column numbers from a YAML error message.
// Returns 0, 0 if unable to extract.
func extractLineColumn(errMsg string) (line, column int) {
	// yaml.v3 errors look like: "yaml: line 5: could not find expected ':'"
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError removes the "yaml: line X:" prefix from error messages for cleaner output.
func cleanYAMLError(errMsg string) string {
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 {
		if strings.HasPrefix(errMsg, "yaml:") {
			return errMsg[idx+2:]
		}
	}
	return errMsg
}
