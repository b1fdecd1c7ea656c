// Package merge overlays a channel override table onto a measurement document.
package merge

import (
	"fmt"

	"github.com/adytools/adyprocessor/internal/channel"
	"github.com/adytools/adyprocessor/internal/document"
)

// Channel record fields written by the overlay.
const (
	FieldTargetCurvePoints = "customTargetCurvePoints"
	FieldLevel             = "customLevel"
	FieldCrossover         = "customCrossover"
	FieldSpeakerType       = "customSpeakerType"
	FieldMidrangeComp      = "midrangeCompensation"
	FieldRolloff           = "frequencyRangeRolloff"
)

// Options control a merge run.
type Options struct {
	// Title replaces the document title.
	Title string
	// RewriteOnly leaves the document content untouched; only the output
	// formatting changes.
	RewriteOnly bool
	// RemoveNonCustom drops channel records that have no override.
	RemoveNonCustom bool
}

// Result summarises what a merge did.
type Result struct {
	// Retained is the number of channel records left in the document.
	Retained int
	// Removed lists the identifiers of dropped records, in document order.
	Removed []string
	// Patched lists the identifiers of records an override was applied to.
	Patched []string
}

// Apply overlays table onto doc in place.
//
// The document structure is validated before anything changes, so on error
// doc is left exactly as it was.
func Apply(doc *document.Document, table *channel.Table, opts Options) (Result, error) {
	if opts.RewriteOnly {
		return Result{}, nil
	}

	channels, err := doc.Channels()
	if err != nil {
		return Result{}, err
	}

	var res Result
	kept := channels[:0:0]
	for _, ch := range channels {
		if opts.RemoveNonCustom && !table.Has(ch.ID()) {
			res.Removed = append(res.Removed, ch.ID())
			continue
		}
		kept = append(kept, ch)
	}

	for _, ch := range kept {
		override, ok := table.Lookup(ch.ID())
		if !ok {
			continue
		}
		if err := applyOverride(ch, override); err != nil {
			return Result{}, fmt.Errorf("channel %s: %w", ch.ID(), err)
		}
		res.Patched = append(res.Patched, ch.ID())
	}

	if err := doc.SetTitle(opts.Title); err != nil {
		return Result{}, err
	}
	if err := doc.SetChannels(kept); err != nil {
		return Result{}, err
	}

	res.Retained = len(kept)
	return res, nil
}

// applyOverride writes every field that is set on o; unset fields leave the
// record as it was.
func applyOverride(ch *document.Channel, o channel.ChannelOverride) error {
	if o.Corrections != nil {
		if err := ch.Set(FieldTargetCurvePoints, channel.FormatCurve(o.Corrections)); err != nil {
			return err
		}
	}

	if o.LevelDB != nil {
		if err := ch.Set(FieldLevel, channel.FormatLevel(*o.LevelDB)); err != nil {
			return err
		}
	}

	// A crossover only means something for a small speaker, so both are
	// written together.
	if o.CrossoverHz != nil {
		if err := ch.Set(FieldCrossover, channel.FormatCrossover(*o.CrossoverHz)); err != nil {
			return err
		}
		if err := ch.Set(FieldSpeakerType, channel.SpeakerTypeSmall); err != nil {
			return err
		}
	}

	if o.MidrangeComp != nil {
		if err := ch.Set(FieldMidrangeComp, channel.FormatMidrange(*o.MidrangeComp)); err != nil {
			return err
		}
	}

	if o.CorrectionLimitHz != nil {
		if err := ch.Set(FieldRolloff, channel.FormatRolloff(*o.CorrectionLimitHz)); err != nil {
			return err
		}
	}

	return nil
}
