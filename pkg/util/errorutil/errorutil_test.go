package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewUnprocessable("validation failed", map[string]any{"titulo": "required"})

	mapped := ToDomainError(original)
	assert.Equal(t, http.StatusUnprocessableEntity, mapped.HTTPStatus)
	assert.Equal(t, "UNPROCESSABLE", mapped.Code)
	assert.Equal(t, "required", mapped.Details["titulo"])
}

func TestToDomainErrorUnwrapsWrappedDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewNotFound("chamado", nil))

	mapped := ToDomainError(wrapped)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorMapsMissingRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")

	mapped := ToDomainError(cause)
	require.NotNil(t, mapped)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	assert.ErrorIs(t, mapped, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorMessage(t *testing.T) {
	err := NewDomainError("CONFLICT", "already exists", http.StatusConflict, nil)
	assert.Equal(t, "already exists", err.Error())

	withCause := &DomainError{Message: "query failed", Err: errors.New("timeout")}
	assert.Equal(t, "query failed: timeout", withCause.Error())
}
