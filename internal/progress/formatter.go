package progress

import (
	"fmt"

	"github.com/fatih/color"
)

// formatStepCounter returns the [N/Total] step counter string
func formatStepCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

// buildStepMessage prefixes the step name with its counter.
func buildStepMessage(step StepInfo) string {
	return fmt.Sprintf("%s %s", formatStepCounter(step.Number, step.TotalSteps), step.Name)
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor {
		return color.New(color.FgGreen).Sprint(symbols.Checkmark)
	}
	return symbols.Checkmark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor {
		return color.New(color.FgRed).Sprint(symbols.Failure)
	}
	return symbols.Failure
}
