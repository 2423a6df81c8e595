package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxPreviewLines = 2000
	truncateMessage = "... (preview truncated, exceeds 2,000 lines) ..."
)

// Preview renders a unified-diff style preview comparing observed and
// desired text. Returns empty string if the texts are identical.
// Previews exceeding 2,000 lines are truncated with a marker.
func Preview(observed, desired, observedLabel, desiredLabel string) string {
	if observed == desired {
		return ""
	}

	dmp := diffmatchpatch.New()
	obsChars, desChars, lineArray := dmp.DiffLinesToChars(observed, desired)
	diffs := dmp.DiffMain(obsChars, desChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", observedLabel)
	fmt.Fprintf(&buf, "+++ %s\n", desiredLabel)

	for _, d := range diffs {
		lines := splitLines(d.Text)

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			writeLines(&buf, " ", lines)
		case diffmatchpatch.DiffDelete:
			writeLines(&buf, "-", lines)
		case diffmatchpatch.DiffInsert:
			writeLines(&buf, "+", lines)
		}
	}

	result := buf.String()
	resultLines := strings.Split(result, "\n")
	if len(resultLines) > maxPreviewLines {
		truncated := strings.Join(resultLines[:maxPreviewLines], "\n")
		return truncated + "\n" + truncateMessage + "\n"
	}

	return result
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" && text[len(text)-1] == '\n' {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func writeLines(buf *bytes.Buffer, marker string, lines []string) {
	for _, line := range lines {
		buf.WriteString(marker)
		buf.WriteString(line)
		buf.WriteString("\n")
	}
}
