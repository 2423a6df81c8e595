package livestore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

func stubRunner(calls *[]recordedCall, output string, err error, exportContent string) runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedCall{name: name, args: args})
		if exportContent != "" && len(args) >= 3 && args[0] == "export" {
			if writeErr := os.WriteFile(args[2], []byte(exportContent), 0o644); writeErr != nil {
				return nil, writeErr
			}
		}
		return []byte(output), err
	}
}

func TestRegCommandSnapshotParsesExport(t *testing.T) {
	t.Parallel()

	exportContent := "Windows Registry Editor Version 5.00\n\n" +
		"[HKLM\\Software\\Acme]\n\"Version\"=\"2.0\"\n"

	var calls []recordedCall
	cmd := NewRegCommand("")
	cmd.run = stubRunner(&calls, "The operation completed successfully.", nil, exportContent)

	snap, err := cmd.Snapshot(context.Background(), `HKLM\Software\Acme`, View64)
	require.NoError(t, err)
	require.NotNil(t, snap)

	sec, ok := snap.Section(`HKLM\Software\Acme`)
	require.True(t, ok)
	v, _ := sec.Value("Version")
	assert.Equal(t, `"2.0"`, v)

	require.Len(t, calls, 1)
	assert.Equal(t, "reg", calls[0].name)
	assert.Equal(t, "export", calls[0].args[0])
	assert.Equal(t, `HKLM\Software\Acme`, calls[0].args[1])
	assert.Contains(t, calls[0].args, "/y")
	assert.Contains(t, calls[0].args, "/reg:64")
}

func TestRegCommandSnapshotMissingKeyIsAbsent(t *testing.T) {
	t.Parallel()

	var calls []recordedCall
	cmd := NewRegCommand("reg")
	cmd.run = stubRunner(&calls,
		"ERROR: The system was unable to find the specified registry key or value.",
		errors.New("exit status 1"), "")

	snap, err := cmd.Snapshot(context.Background(), `HKLM\Software\Missing`, ViewDefault)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRegCommandSnapshotOtherFailure(t *testing.T) {
	t.Parallel()

	var calls []recordedCall
	cmd := NewRegCommand("reg")
	cmd.run = stubRunner(&calls, "ERROR: Access is denied.", errors.New("exit status 1"), "")

	_, err := cmd.Snapshot(context.Background(), `HKLM\Software\Acme`, ViewDefault)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Access is denied")
}

func TestRegCommandImportBuildsArgs(t *testing.T) {
	t.Parallel()

	var calls []recordedCall
	cmd := NewRegCommand("reg")
	cmd.run = stubRunner(&calls, "The operation completed successfully.", nil, "")

	require.NoError(t, cmd.Import(context.Background(), "acme.reg", View32))

	require.Len(t, calls, 1)
	assert.Equal(t, "import", calls[0].args[0])
	assert.Contains(t, calls[0].args, "/reg:32")
}

func TestRegCommandImportFailure(t *testing.T) {
	t.Parallel()

	var calls []recordedCall
	cmd := NewRegCommand("reg")
	cmd.run = stubRunner(&calls, "ERROR: Error accessing the registry.", errors.New("exit status 1"), "")

	err := cmd.Import(context.Background(), "acme.reg", ViewDefault)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error accessing the registry")
}
