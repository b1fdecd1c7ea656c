package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Display draws step progress. The zero value is not usable; use
// NewDisplay.
type Display struct {
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	out          io.Writer
	enabled      bool
	spinner      *spinner.Spinner
}

// NewDisplay creates a display writing to out. When enabled is false every
// method is a no-op, which is how --quiet and show_progress: false are served.
func NewDisplay(caps TerminalCapabilities, out io.Writer, enabled bool) *Display {
	if out == nil {
		out = os.Stderr
	}
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
		enabled:      enabled,
	}
}

// StartStep begins displaying a step.
func (d *Display) StartStep(step StepInfo) error {
	if err := step.Validate(); err != nil {
		return err
	}
	if !d.enabled {
		return nil
	}

	d.StopSpinner()
	msg := buildStepMessage(step)

	if d.capabilities.IsTTY {
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
			spinner.WithWriter(d.out),
		)
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
		return nil
	}

	fmt.Fprintln(d.out, msg)
	return nil
}

// CompleteStep stops the spinner and marks the step done.
func (d *Display) CompleteStep(step StepInfo) {
	if !d.enabled {
		return
	}
	d.StopSpinner()
	fmt.Fprintf(d.out, "%s %s\n", checkmark(d.symbols, d.capabilities.SupportsColor), buildStepMessage(step))
}

// FailStep stops the spinner and marks the step failed.
func (d *Display) FailStep(step StepInfo, err error) {
	if !d.enabled {
		return
	}
	d.StopSpinner()
	fmt.Fprintf(d.out, "%s %s: %v\n", failureMark(d.symbols, d.capabilities.SupportsColor), buildStepMessage(step), err)
}

// StopSpinner stops the spinner without printing a status line.
func (d *Display) StopSpinner() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
