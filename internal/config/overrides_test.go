package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adytools/adyprocessor/internal/channel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeOverrides(t *testing.T, filename, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOverrides_YAML(t *testing.T) {
	t.Parallel()

	path := writeOverrides(t, "tuning.yml", `
channels:
  FL:
    crossover_hz: 80
    midrange_comp: false
    correction_limit_hz: 1000
    corrections:
      - [20, 9.5]
      - "{150.0, -1.0}"
      - {frequency_hz: 500, gain_db: 0}
  SW1:
    level_db: 3
  fl:
    level_db: -1.5
`)

	table, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"FL", "SW1", "fl"}, table.IDs())

	fl, ok := table.Lookup("FL")
	require.True(t, ok)
	require.NotNil(t, fl.CrossoverHz)
	assert.Equal(t, 80, *fl.CrossoverHz)
	require.NotNil(t, fl.MidrangeComp)
	assert.False(t, *fl.MidrangeComp)
	require.NotNil(t, fl.CorrectionLimitHz)
	assert.Equal(t, 1000.0, *fl.CorrectionLimitHz)
	assert.Equal(t, []channel.CurvePoint{channel.Pt(20, 9.5), channel.Pt(150, -1), channel.Pt(500, 0)}, fl.Corrections)
	assert.Nil(t, fl.LevelDB)

	sw, ok := table.Lookup("SW1")
	require.True(t, ok)
	require.NotNil(t, sw.LevelDB)
	assert.Equal(t, 3.0, *sw.LevelDB)
	assert.Nil(t, sw.CrossoverHz)
	assert.Nil(t, sw.MidrangeComp)
	assert.Nil(t, sw.Corrections)

	lower, ok := table.Lookup("fl")
	require.True(t, ok)
	assert.Equal(t, -1.5, *lower.LevelDB)
}

func TestLoadOverrides_JSON(t *testing.T) {
	t.Parallel()

	path := writeOverrides(t, "tuning.json", `{
		"channels": {
			"C": {"crossover_hz": 60, "corrections": [[20, 0], [100, 0.5]], "midrange_comp": true}
		}
	}`)

	table, err := LoadOverrides(path)
	require.NoError(t, err)

	c, ok := table.Lookup("C")
	require.True(t, ok)
	assert.Equal(t, 60, *c.CrossoverHz)
	assert.True(t, *c.MidrangeComp)
	assert.Equal(t, []channel.CurvePoint{channel.Pt(20, 0), channel.Pt(100, 0.5)}, c.Corrections)
}

func TestLoadOverrides_RoundTripsDefaultTable(t *testing.T) {
	t.Parallel()

	data, err := yaml.Marshal(map[string]interface{}{"channels": channel.Default().Map()})
	require.NoError(t, err)
	path := writeOverrides(t, "export.yml", string(data))

	table, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, channel.Default().Map(), table.Map())
}

func TestLoadOverrides_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		filename string
		content  string
		wantErr  string
	}{
		"missing file": {
			filename: "",
			wantErr:  "failed to load overrides",
		},
		"no channels": {
			filename: "tuning.yml",
			content:  "channels: {}\n",
			wantErr:  "no channels defined",
		},
		"negative crossover": {
			filename: "tuning.yml",
			content:  "channels:\n  FL:\n    crossover_hz: -80\n",
			wantErr:  "channels.FL.crossover_hz",
		},
		"fractional crossover in yaml": {
			filename: "tuning.yml",
			content:  "channels:\n  FL:\n    crossover_hz: 80.5\n",
			wantErr:  "80.5 is not a whole number",
		},
		"fractional crossover in json": {
			filename: "tuning.json",
			content:  `{"channels": {"FL": {"crossover_hz": 80.5}}}`,
			wantErr:  "80.5 is not a whole number",
		},
		"zero correction limit": {
			filename: "tuning.yml",
			content:  "channels:\n  SRA:\n    correction_limit_hz: 0\n",
			wantErr:  "channels.SRA.correction_limit_hz",
		},
		"non-positive point frequency": {
			filename: "tuning.yml",
			content:  "channels:\n  C:\n    corrections:\n      - [20, 1]\n      - [0, 1]\n",
			wantErr:  "channels.C.corrections[1].frequency_hz",
		},
		"malformed point string": {
			filename: "tuning.yml",
			content:  "channels:\n  C:\n    corrections:\n      - \"20, 1\"\n",
			wantErr:  "expected {frequency, gain}",
		},
		"point with three values": {
			filename: "tuning.yml",
			content:  "channels:\n  C:\n    corrections:\n      - [20, 1, 2]\n",
			wantErr:  "expected [frequency, gain]",
		},
		"misspelled field": {
			filename: "tuning.yml",
			content:  "channels:\n  FL:\n    crossover: 80\n",
			wantErr:  "crossover",
		},
		"yaml syntax error": {
			filename: "tuning.yml",
			content:  "channels:\n  FL: [\n",
			wantErr:  "tuning.yml",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "absent.yml")
			if tt.filename != "" {
				path = writeOverrides(t, tt.filename, tt.content)
			}

			_, err := LoadOverrides(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateOverrides(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		overrides map[string]channel.ChannelOverride
		wantErr   string
	}{
		"valid": {
			overrides: map[string]channel.ChannelOverride{"SW1": {LevelDB: channel.Float(0)}},
		},
		"empty override": {
			overrides: map[string]channel.ChannelOverride{"FL": {}},
			wantErr:   "override sets no fields",
		},
		"blank channel id": {
			overrides: map[string]channel.ChannelOverride{" ": {LevelDB: channel.Float(1)}},
			wantErr:   "channel id must not be empty",
		},
		"first failure in sorted order": {
			overrides: map[string]channel.ChannelOverride{
				"SRA": {CrossoverHz: channel.Int(0)},
				"C":   {CorrectionLimitHz: channel.Float(-1)},
			},
			wantErr: "channels.C.correction_limit_hz",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := validateOverrides("tuning.yml", tt.overrides)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
