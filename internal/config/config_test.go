package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/regsync/internal/livestore"
	regsyncerrors "github.com/alexisbeaulieu97/regsync/pkg/errors"
)

const validConfig = `version: "1.0"
name: workstation
settings:
  dry_run: false
  log_level: info
subjects:
  - id: acme_settings
    source:
      path: exports/acme.reg
    view: "64"
  - id: acme_policies
    source:
      git:
        url: https://example.com/exports.git
        ref: main
        path: policies/acme.reg
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfigValid(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "workstation", cfg.Name)
	require.Len(t, cfg.Subjects, 2)

	first := cfg.Subjects[0]
	assert.Equal(t, "acme_settings", first.ID)
	assert.Equal(t, "exports/acme.reg", first.Source.Path)
	assert.Equal(t, livestore.View64, first.TaskView())

	second := cfg.Subjects[1]
	require.NotNil(t, second.Source.Git)
	assert.Equal(t, "main", second.Source.Git.Ref)
	assert.Equal(t, livestore.ViewDefault, second.TaskView())

	src := second.TaskSource()
	require.NotNil(t, src.Git)
	assert.Equal(t, "policies/acme.reg", src.Git.Path)
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var parseErr *regsyncerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseConfigMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(writeConfig(t, "version: [unclosed\n"))
	require.Error(t, err)

	var parseErr *regsyncerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestValidateConfigRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{
			name:    "missing version",
			content: "name: x\nsubjects:\n  - id: a\n    source:\n      path: a.reg\n",
			wantIn:  "version",
		},
		{
			name:    "bad subject id",
			content: "version: \"1.0\"\nname: x\nsubjects:\n  - id: Not-Valid\n    source:\n      path: a.reg\n",
			wantIn:  "subject_id",
		},
		{
			name:    "no subjects",
			content: "version: \"1.0\"\nname: x\nsubjects: []\n",
			wantIn:  "subjects",
		},
		{
			name:    "bad view",
			content: "version: \"1.0\"\nname: x\nsubjects:\n  - id: a\n    source:\n      path: a.reg\n    view: \"16\"\n",
			wantIn:  "oneof",
		},
		{
			name:    "source without path or git",
			content: "version: \"1.0\"\nname: x\nsubjects:\n  - id: a\n    source: {}\n",
			wantIn:  "either path or git",
		},
		{
			name:    "source with both path and git",
			content: "version: \"1.0\"\nname: x\nsubjects:\n  - id: a\n    source:\n      path: a.reg\n      git:\n        url: u\n        path: p\n",
			wantIn:  "mutually exclusive",
		},
		{
			name: "duplicate subject ids",
			content: "version: \"1.0\"\nname: x\nsubjects:\n" +
				"  - id: a\n    source:\n      path: a.reg\n" +
				"  - id: a\n    source:\n      path: b.reg\n",
			wantIn: "duplicate subject id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseConfig(writeConfig(t, tt.content))
			require.Error(t, err)

			var validationErr *regsyncerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}
