package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewIdenticalTextIsEmpty(t *testing.T) {
	t.Parallel()

	text := "[HKLM\\Software\\Acme]\n\"Version\"=\"2.0\"\n"
	assert.Empty(t, Preview(text, text, "observed", "desired"))
}

func TestPreviewMarksInsertionsAndDeletions(t *testing.T) {
	t.Parallel()

	observed := "\"Channel\"=\"beta\"\n"
	desired := "\"Channel\"=\"stable\"\n"

	out := Preview(observed, desired, "observed", "desired")

	require.NotEmpty(t, out)
	assert.Contains(t, out, "--- observed")
	assert.Contains(t, out, "+++ desired")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "stable")
}

func TestPreviewTruncatesLongOutput(t *testing.T) {
	t.Parallel()

	var desired strings.Builder
	for i := 0; i < 5000; i++ {
		desired.WriteString("\"entry\"=\"value\"\n")
	}

	out := Preview("", desired.String(), "observed", "desired")

	require.NotEmpty(t, out)
	assert.Contains(t, out, truncateMessage)
	assert.LessOrEqual(t, len(strings.Split(out, "\n")), maxPreviewLines+3)
}
