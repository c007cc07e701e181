package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatus(t *testing.T) {
	cause := errors.New("connection refused")

	require.Equal(t, http.StatusBadRequest, MapErrorToStatus(Invalid("Empty", nil)))
	require.Equal(t, http.StatusInternalServerError, MapErrorToStatus(Internal("write error", cause)))
	require.Equal(t, http.StatusNotFound, MapErrorToStatus(fmt.Errorf("lookup: %w", ErrNotFound)))
	require.Equal(t, http.StatusServiceUnavailable, MapErrorToStatus(ErrUnavailable))
	require.Equal(t, http.StatusInternalServerError, MapErrorToStatus(cause))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Internal("read error", cause)

	require.Equal(t, "read error: timeout", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestInvalidDefaultsToInvalidInput(t *testing.T) {
	err := Invalid("Empty", nil)
	require.Equal(t, "Empty", err.Error())
	require.ErrorIs(t, err, ErrInvalidInput)
}
