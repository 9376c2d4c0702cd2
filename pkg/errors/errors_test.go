package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/fpdsverify/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "LINK",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field LINK: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "missing required columns",
		}
		assert.Equal(t, "validation failed: missing required columns", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("SAVED", "abc", "not a number")
		assert.Equal(t, "validation failed for field SAVED: not a number", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestFetchError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := pkgerrors.NewFetchError("https://fpds.gov/x", 404, "not found")
		assert.Equal(t, "fetch failed for https://fpds.gov/x (status 404): not found", err.Error())
	})

	t.Run("server errors map to source unavailable", func(t *testing.T) {
		err := pkgerrors.NewFetchError("https://fpds.gov/x", 503, "maintenance")
		assert.True(t, errors.Is(err, pkgerrors.ErrSourceUnavailable))
		assert.True(t, pkgerrors.IsSourceUnavailable(err))
	})

	t.Run("client errors do not", func(t *testing.T) {
		err := pkgerrors.NewFetchError("https://fpds.gov/x", 404, "not found")
		assert.False(t, errors.Is(err, pkgerrors.ErrSourceUnavailable))
	})

	t.Run("wrap preserves cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := pkgerrors.WrapFetch("https://fpds.gov/x", 0, cause)
		require.Error(t, err)
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("wrap nil returns nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapFetch("https://fpds.gov/x", 0, nil))
	})
}

func TestParseError(t *testing.T) {
	t.Run("with source", func(t *testing.T) {
		err := pkgerrors.NewParseError("xlsx", "contracts.xlsx", "sheet not found", nil)
		assert.Equal(t, "parse error in xlsx source contracts.xlsx: sheet not found", err.Error())
	})

	t.Run("without source", func(t *testing.T) {
		err := pkgerrors.NewParseError("html", "", "malformed markup", nil)
		assert.Equal(t, "html parse error: malformed markup", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("bad byte")
		err := pkgerrors.NewParseError("html", "page", cause.Error(), cause)
		assert.True(t, errors.Is(err, cause))
	})
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := pkgerrors.NewIOError("write", "/tmp/archive/x.html", errors.New("disk full"))
		assert.Equal(t, "IO error during write of /tmp/archive/x.html: disk full", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := pkgerrors.WrapIO("create", "/tmp/archive", cause)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("wrap nil returns nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("write", "/tmp/x", nil))
	})
}
