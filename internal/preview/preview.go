// Package preview describes what an overlay would change without writing it:
// either as an RFC 7386 merge patch or as a line diff of the formatted output.
package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Preview formats.
const (
	ModePatch = "patch"
	ModeDiff  = "diff"
)

// Modes lists the accepted preview formats.
var Modes = []string{ModePatch, ModeDiff}

// contextLines is how many unchanged lines are kept around each change.
const contextLines = 2

// Render describes the change from before to after in the given mode.
func Render(mode string, before, after []byte, colorize bool) (string, error) {
	switch mode {
	case ModePatch:
		patch, err := MergePatch(before, after)
		if err != nil {
			return "", err
		}
		return string(patch), nil
	case ModeDiff:
		return LineDiff(string(before), string(after), colorize), nil
	default:
		return "", fmt.Errorf("unknown preview mode %q", mode)
	}
}

// MergePatch returns the tab-indented merge patch that turns before into after.
// An unchanged document yields "{}".
func MergePatch(before, after []byte) ([]byte, error) {
	patch, err := jsonpatch.CreateMergePatch(before, after)
	if err != nil {
		return nil, fmt.Errorf("creating merge patch: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, patch, "", "\t"); err != nil {
		return nil, fmt.Errorf("indenting merge patch: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// LineDiff returns a line-oriented diff: removed lines prefixed "-", added
// lines "+", and up to contextLines unchanged lines around each change.
// Identical inputs yield "".
func LineDiff(before, after string, colorize bool) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	paint := func(f func(a ...interface{}) string, s string) string {
		if colorize {
			return f(s)
		}
		return s
	}

	changed := false
	var out strings.Builder
	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffDelete:
			changed = true
			for _, l := range text {
				out.WriteString(paint(red, "-"+l) + "\n")
			}
		case diffpatch.DiffInsert:
			changed = true
			for _, l := range text {
				out.WriteString(paint(green, "+"+l) + "\n")
			}
		case diffpatch.DiffEqual:
			writeContext(&out, text, i > 0, i < len(diffs)-1)
		}
	}

	if !changed {
		return ""
	}
	return out.String()
}

// writeContext writes the unchanged lines that border a change, eliding the
// rest with "...".
func writeContext(out *strings.Builder, text []string, afterChange, beforeChange bool) {
	writeLines := func(ls []string) {
		for _, l := range ls {
			out.WriteString(" " + l + "\n")
		}
	}

	switch {
	case afterChange && beforeChange:
		if len(text) <= 2*contextLines {
			writeLines(text)
			return
		}
		writeLines(text[:contextLines])
		out.WriteString("...\n")
		writeLines(text[len(text)-contextLines:])
	case beforeChange:
		if len(text) > contextLines {
			out.WriteString("...\n")
			text = text[len(text)-contextLines:]
		}
		writeLines(text)
	case afterChange:
		if len(text) > contextLines {
			writeLines(text[:contextLines])
			out.WriteString("...\n")
			return
		}
		writeLines(text)
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
