package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	err := NewEmailTaken("ana@example.com")
	domainErr := ToDomainError(err)
	require.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	require.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	require.Equal(t, "ana@example.com", domainErr.Details["email"])
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	require.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	require.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}

func TestTaxonomyStatusCodes(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"UNAUTHORIZED":           {NewUnauthorized("no token"), http.StatusUnauthorized},
		"NOT_FOUND":              {NewNotFound("todo", nil), http.StatusNotFound},
		"VALIDATION_FAILED":      {NewValidationError("title required", nil), http.StatusBadRequest},
		"INVALID_CREDENTIALS":    {NewInvalidCredentials(), http.StatusBadRequest},
		"INACTIVE_USER":          {NewInactiveUser(), http.StatusBadRequest},
		"UNSUPPORTED_MEDIA_TYPE": {NewUnsupportedMediaType("text/plain"), http.StatusBadRequest},
	}
	for code, tc := range cases {
		domainErr := ToDomainError(tc.err)
		require.Equal(t, code, domainErr.Code)
		require.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}
