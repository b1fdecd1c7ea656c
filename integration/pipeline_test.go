// Package integration runs whole processing pipelines: settings and override
// files are loaded from disk, merged into a measurement and written back.
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adytools/adyprocessor/internal/channel"
	"github.com/adytools/adyprocessor/internal/config"
	"github.com/adytools/adyprocessor/internal/document"
	"github.com/adytools/adyprocessor/internal/merge"
	"github.com/adytools/adyprocessor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPipelineWithSettingsFiles loads settings in both supported formats and
// checks that the written measurement reflects them.
func TestPipelineWithSettingsFiles(t *testing.T) {
	tests := map[string]struct {
		settingsName    string
		settings        string
		overridesName   string
		overrides       string
		wantIDs         []string
		wantCrossoverFL string
	}{
		"yaml settings with yaml overrides": {
			settingsName:  "settings.yml",
			settings:      "remove_non_custom: true\noverrides_file: %OVERRIDES%\n",
			overridesName: "tuning.yml",
			overrides: `channels:
  FL:
    crossover_hz: 90
    corrections:
      - [20, 6]
      - "{150.0, -1.0}"
      - {frequency_hz: 1000, gain_db: 0}
  C:
    level_db: -0.5
`,
			wantIDs:         []string{"FL", "C"},
			wantCrossoverFL: `"90"`,
		},
		"json settings with json overrides": {
			settingsName:    "settings.json",
			settings:        `{"remove_non_custom": false, "overrides_file": "%OVERRIDES%"}`,
			overridesName:   "tuning.json",
			overrides:       `{"channels": {"FL": {"crossover_hz": 60, "corrections": [[20, 3]]}}}`,
			wantIDs:         []string{"FL", "C", "FHL"},
			wantCrossoverFL: `"60"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()

			overridesPath := filepath.Join(dir, tt.overridesName)
			testutil.WriteFile(t, overridesPath, tt.overrides)
			settingsPath := filepath.Join(dir, tt.settingsName)
			testutil.WriteFile(t, settingsPath, strings.ReplaceAll(tt.settings, "%OVERRIDES%", overridesPath))

			cfg, err := config.Load(settingsPath)
			require.NoError(t, err)
			table, err := config.LoadOverrides(cfg.OverridesFile)
			require.NoError(t, err)

			input := testutil.CreateTempDocument(t, dir, "in.ady", testutil.WithChannels("FL", "C", "FHL"))
			doc, err := document.Load(input)
			require.NoError(t, err)

			_, err = merge.Apply(doc, table, merge.Options{Title: "integration", RemoveNonCustom: cfg.RemoveNonCustom})
			require.NoError(t, err)

			output := filepath.Join(dir, "out", "result.ady")
			require.NoError(t, document.Write(output, doc))

			var got struct {
				Title    string                       `json:"title"`
				Model    string                       `json:"targetModelName"`
				Channels []map[string]json.RawMessage `json:"detectedChannels"`
			}
			require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, output)), &got))

			assert.Equal(t, "integration", got.Title)
			assert.Equal(t, "AVR-X3700H", got.Model)
			ids := make([]string, 0, len(got.Channels))
			for _, ch := range got.Channels {
				var id string
				require.NoError(t, json.Unmarshal(ch["commandId"], &id))
				ids = append(ids, id)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantCrossoverFL, string(got.Channels[0]["customCrossover"]))
		})
	}
}

// TestRewriteOnlyIsIdempotent formats a measurement twice; the second pass
// must reproduce the first byte for byte.
func TestRewriteOnlyIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateTempDocument(t, dir, "in.ady")

	first := filepath.Join(dir, "first.ady")
	second := filepath.Join(dir, "second.ady")
	for _, step := range []struct{ in, out string }{{input, first}, {first, second}} {
		doc, err := document.Load(step.in)
		require.NoError(t, err)
		_, err = merge.Apply(doc, channel.Default(), merge.Options{RewriteOnly: true})
		require.NoError(t, err)
		require.NoError(t, document.Write(step.out, doc))
	}

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

// TestMergeIsIdempotent applies the built-in table to its own output.
func TestMergeIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateTempDocument(t, dir, "in.ady", testutil.WithChannels("FL", "FR", "C", "SLA", "SRA", "SW1", "FHL"))

	once := filepath.Join(dir, "once.ady")
	twice := filepath.Join(dir, "twice.ady")
	for _, step := range []struct{ in, out string }{{input, once}, {once, twice}} {
		doc, err := document.Load(step.in)
		require.NoError(t, err)
		_, err = merge.Apply(doc, channel.Default(), merge.Options{Title: "tuned", RemoveNonCustom: true})
		require.NoError(t, err)
		require.NoError(t, document.Write(step.out, doc))
	}

	assert.Equal(t, testutil.ReadFile(t, once), testutil.ReadFile(t, twice))
}
