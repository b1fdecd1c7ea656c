package channel

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurvePoint is one target-curve correction: a gain at a frequency.
type CurvePoint struct {
	FrequencyHz float64 `koanf:"frequency_hz" validate:"gt=0"`
	GainDB      float64 `koanf:"gain_db"`

	// text is the point's original "{f, g}" spelling when it differs from the
	// canonical rendering, e.g. "{3565.00, -3.5}".
	text string
}

// Pt is shorthand for building curve literals.
func Pt(frequencyHz, gainDB float64) CurvePoint {
	return CurvePoint{FrequencyHz: frequencyHz, GainDB: gainDB}
}

// String renders the point the way the calibration tool stores it,
// e.g. "{20.0, 9.5}".
// A point parsed from that notation keeps its original spelling.
func (p CurvePoint) String() string {
	if p.text != "" {
		return p.text
	}
	return canonical(p.FrequencyHz, p.GainDB)
}

func canonical(frequencyHz, gainDB float64) string {
	return "{" + FormatDecimal(frequencyHz) + ", " + FormatDecimal(gainDB) + "}"
}

// MarshalJSON writes the point as a [frequency, gain] pair, or as its
// "{f, g}" string when it carries a non-canonical spelling.
func (p CurvePoint) MarshalJSON() ([]byte, error) {
	if p.text != "" {
		return json.Marshal(p.text)
	}
	return json.Marshal([2]float64{p.FrequencyHz, p.GainDB})
}

// MarshalYAML writes the point as a flow-style [frequency, gain] pair, or as
// its "{f, g}" string when it carries a non-canonical spelling.
func (p CurvePoint) MarshalYAML() (interface{}, error) {
	if p.text != "" {
		return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Tag: "!!str", Value: p.text}, nil
	}
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!float", Value: FormatDecimal(p.FrequencyHz)},
			{Kind: yaml.ScalarNode, Tag: "!!float", Value: FormatDecimal(p.GainDB)},
		},
	}, nil
}

// ParseCurvePoint parses the calibration tool's "{freq, gain}" notation.
// Whitespace is normalised; numbers written with a decimal point keep their
// spelling.
func ParseCurvePoint(s string) (CurvePoint, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return CurvePoint{}, fmt.Errorf("curve point %q: expected {frequency, gain}", s)
	}
	parts := strings.Split(trimmed[1:len(trimmed)-1], ",")
	if len(parts) != 2 {
		return CurvePoint{}, fmt.Errorf("curve point %q: expected two values, got %d", s, len(parts))
	}

	freqText, gainText := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	freq, err := strconv.ParseFloat(freqText, 64)
	if err != nil {
		return CurvePoint{}, fmt.Errorf("curve point %q: frequency: %w", s, err)
	}
	gain, err := strconv.ParseFloat(gainText, 64)
	if err != nil {
		return CurvePoint{}, fmt.Errorf("curve point %q: gain: %w", s, err)
	}

	p := CurvePoint{FrequencyHz: freq, GainDB: gain}
	// Only spellings that already carry a decimal point are kept; anything
	// else is written in the canonical form.
	if strings.Contains(freqText, ".") && strings.Contains(gainText, ".") {
		if text := "{" + freqText + ", " + gainText + "}"; text != canonical(freq, gain) {
			p.text = text
		}
	}
	return p, nil
}

// mustParseCurvePoint is ParseCurvePoint for curated literals.
func mustParseCurvePoint(s string) CurvePoint {
	p, err := ParseCurvePoint(s)
	if err != nil {
		panic(err)
	}
	return p
}

// FormatCurve renders a list of points in document order.
func FormatCurve(points []CurvePoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.String()
	}
	return out
}
