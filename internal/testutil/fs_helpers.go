// Package testutil provides test utilities and helpers for adyprocessor tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// documentOptions configures a measurement fixture.
type documentOptions struct {
	title    string
	channels []string
	extra    string
}

// DocumentOption is a functional option for CreateTempDocument.
type DocumentOption func(*documentOptions)

// WithTitle sets the fixture title.
func WithTitle(title string) DocumentOption {
	return func(o *documentOptions) {
		o.title = title
	}
}

// WithChannels sets the commandIds of the fixture's detectedChannels, one
// record per id with a few measurement fields.
func WithChannels(ids ...string) DocumentOption {
	return func(o *documentOptions) {
		o.channels = ids
	}
}

// WithRawChannels replaces the generated detectedChannels records with raw
// JSON objects.
func WithRawChannels(records ...string) DocumentOption {
	return func(o *documentOptions) {
		o.channels = nil
		o.extra = strings.Join(records, ", ")
	}
}

// CreateTempDocument writes a measurement (.ady) file into dir and returns its
// path. By default it has the title "measurement" and channels FL, C, SW1.
func CreateTempDocument(t *testing.T, dir, name string, opts ...DocumentOption) string {
	t.Helper()

	o := documentOptions{
		title:    "measurement",
		channels: []string{"FL", "C", "SW1"},
	}
	for _, opt := range opts {
		opt(&o)
	}

	path := filepath.Join(dir, name)
	WriteFile(t, path, renderDocument(o))
	return path
}

// renderDocument renders a measurement fixture as JSON.
func renderDocument(o documentOptions) string {
	records := make([]string, 0, len(o.channels))
	for _, id := range o.channels {
		records = append(records, fmt.Sprintf(
			`{"commandId": %q, "customLevel": "0.0", "customDistance": 3.2, "responseData": {"0": [0.5, -0.25]}}`, id))
	}
	body := strings.Join(records, ", ")
	if o.extra != "" {
		body = o.extra
	}

	return fmt.Sprintf(`{
  "title": %q,
  "targetModelName": "AVR-X3700H",
  "detectedChannels": [%s],
  "enTargetCurveType": 1
}`, o.title, body)
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}
