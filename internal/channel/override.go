// Package channel defines the per-channel tuning overrides applied to a
// calibration measurement document, and the immutable table that maps channel
// identifiers to them.
package channel

// SpeakerTypeSmall is the calibration tool's speaker type for a satellite
// speaker whose bass is redirected to the subwoofer below its crossover.
const SpeakerTypeSmall = "S"

// ChannelOverride is a sparse patch for one channel record.
// A nil field leaves the corresponding document field untouched.
type ChannelOverride struct {
	// CrossoverHz sets the crossover and turns the channel into a small speaker.
	CrossoverHz *int `koanf:"crossover_hz" json:"crossover_hz,omitempty" yaml:"crossover_hz,omitempty" validate:"omitempty,gt=0"`
	// LevelDB is the reference-level trim in dB.
	LevelDB *float64 `koanf:"level_db" json:"level_db,omitempty" yaml:"level_db,omitempty"`
	// Corrections replaces the channel's target-curve points as a whole.
	// A nil slice means absent; an empty non-nil slice clears the curve.
	Corrections []CurvePoint `koanf:"corrections" json:"corrections,omitempty" yaml:"corrections,omitempty" validate:"omitempty,dive"`
	// MidrangeComp is written verbatim when set, including false.
	MidrangeComp *bool `koanf:"midrange_comp" json:"midrange_comp,omitempty" yaml:"midrange_comp,omitempty"`
	// CorrectionLimitHz is the upper frequency bound of the applied correction.
	CorrectionLimitHz *float64 `koanf:"correction_limit_hz" json:"correction_limit_hz,omitempty" yaml:"correction_limit_hz,omitempty" validate:"omitempty,gt=0"`
}

// IsEmpty reports whether the override sets no field at all.
func (o ChannelOverride) IsEmpty() bool {
	return o.CrossoverHz == nil &&
		o.LevelDB == nil &&
		o.Corrections == nil &&
		o.MidrangeComp == nil &&
		o.CorrectionLimitHz == nil
}

// Clone returns a deep copy so callers cannot mutate a table entry through
// shared pointers.
func (o ChannelOverride) Clone() ChannelOverride {
	c := ChannelOverride{
		CrossoverHz:       clonePtr(o.CrossoverHz),
		LevelDB:           clonePtr(o.LevelDB),
		MidrangeComp:      clonePtr(o.MidrangeComp),
		CorrectionLimitHz: clonePtr(o.CorrectionLimitHz),
	}
	if o.Corrections != nil {
		c.Corrections = make([]CurvePoint, len(o.Corrections))
		copy(c.Corrections, o.Corrections)
	}
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Int, Float and Bool build optional field values for table literals.
func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }

func Bool(v bool) *bool { return &v }
