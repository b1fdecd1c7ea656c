package config

import (
	"fmt"
	"math"
	"reflect"

	"github.com/adytools/adyprocessor/internal/channel"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"
)

// overridesFile is the shape of an external override table.
type overridesFile struct {
	Channels map[string]channel.ChannelOverride `koanf:"channels" json:"channels" yaml:"channels"`
}

// LoadOverrides reads a JSON or YAML override table and returns it as an
// immutable channel table. Unknown keys are rejected so a misspelled field
// cannot silently turn into "absent".
func LoadOverrides(path string) (*channel.Table, error) {
	// Channel identifiers are matched verbatim, so use a delimiter that cannot
	// appear in one and keep koanf from splitting keys.
	k := koanf.New("::")
	if err := loadFile(k, path); err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}

	var of overridesFile
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.DecodeHookFuncType(wholeNumberHook),
				mapstructure.DecodeHookFuncType(curvePointHook),
			),
			TagName:          "koanf",
			ErrorUnused:      true,
			WeaklyTypedInput: false,
			Result:           &of,
		},
	}
	if err := k.UnmarshalWithConf("", &of, conf); err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	if err := validateOverrides(path, of.Channels); err != nil {
		return nil, err
	}
	return channel.NewTable(of.Channels), nil
}

var curvePointType = reflect.TypeOf(channel.CurvePoint{})

// wholeNumberHook rejects fractional values for integer fields such as
// crossover_hz; mapstructure would otherwise truncate 80.5 to 80.
func wholeNumberHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}

	var f float64
	switch v := data.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	default:
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	return data, nil
}

// curvePointHook accepts the three spellings of a curve point: a
// [frequency, gain] pair, the calibration tool's "{f, g}" string, or a
// {frequency_hz, gain_db} map (decoded by mapstructure itself).
func curvePointHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != curvePointType {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		return channel.ParseCurvePoint(v)
	case []interface{}:
		if len(v) != 2 {
			return nil, fmt.Errorf("curve point %v: expected [frequency, gain]", v)
		}
		freq, err := toFloat(v[0])
		if err != nil {
			return nil, fmt.Errorf("curve point %v: frequency: %w", v, err)
		}
		gain, err := toFloat(v[1])
		if err != nil {
			return nil, fmt.Errorf("curve point %v: gain: %w", v, err)
		}
		return channel.Pt(freq, gain), nil
	default:
		return data, nil
	}
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
}
