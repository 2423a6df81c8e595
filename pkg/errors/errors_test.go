package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("export.reg", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "export.reg", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "export.reg")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("subjects[1].source", "either path or git is required", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "subjects[1].source", validationErr.Field)
	require.Contains(t, validationErr.Message, "either path or git is required")
}

func TestFetchErrorIncludesSubjectContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("no such file")
	err := NewFetchError("app_settings", underlying)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, "app_settings", fetchErr.Subject)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestRequirementErrorIncludesSubjectContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("export command failed")
	err := NewRequirementError("app_settings", underlying)

	var reqErr *RequirementError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, "app_settings", reqErr.Subject)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestOperationErrorIncludesSubjectContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("import command failed")
	err := NewOperationError("app_settings", underlying)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, "app_settings", opErr.Subject)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestDriftErrorMentionsSubject(t *testing.T) {
	t.Parallel()

	err := NewDriftError("app_settings", "2 entries still differ")

	var driftErr *DriftError
	require.ErrorAs(t, err, &driftErr)
	require.Equal(t, "app_settings", driftErr.Subject)
	require.Contains(t, err.Error(), "app_settings")
	require.Contains(t, err.Error(), "2 entries still differ")
}
