package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders err for a terminal, with colour when enabled.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	return format(err, red, yellow, cyan)
}

// FormatErrorPlain renders err without colour codes.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return format(err, plain, plain, plain)
}

func format(err *CLIError, heading, label, detail func(a ...interface{}) string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s\n", heading(err.Category.String()), err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&b, "\n%s\n  %s\n", label("Usage:"), detail(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", label("To fix this:"))
		for i, step := range err.Remediation {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}

	return b.String()
}

// PrintError writes err to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes err to w. Colour follows fatih/color's terminal detection.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError renders a plain error under the given category.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}
