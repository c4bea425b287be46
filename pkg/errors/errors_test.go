package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "login required"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		require.Equal(t, tt.status, meta.HTTPStatus, tt.code)
		require.Equal(t, tt.publicMsg, meta.PublicMessage, tt.code)
		require.Equal(t, tt.retryable, meta.Retryable, tt.code)
		require.Equal(t, tt.detailsOK, meta.DetailsAllowed, tt.code)
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	require.Equal(t, http.StatusInternalServerError, MetadataFor("SOMETHING_UNKNOWN").HTTPStatus)
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	require.Equal(t, CodeValidation, base.Code())
	require.Equal(t, "missing foo", base.Message())
	require.Nil(t, base.Details())

	detailed := base.WithDetails(map[string]any{"field": "foo"})
	require.NotNil(t, detailed.Details())
	require.Nil(t, base.Details(), "sentinel must not be mutated")

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	require.ErrorIs(t, wrapped, cause)
	require.Equal(t, CodeConflict, wrapped.Code())

	require.Equal(t, "NOT_FOUND: product 7 not found", Newf(CodeNotFound, "product %d not found", 7).Error())
}

func TestSentinelMatchesAfterWrapping(t *testing.T) {
	sentinel := New(CodeStateConflict, "cart is empty")
	err := fmt.Errorf("begin checkout: %w", sentinel.WithDetails("x"))
	require.ErrorIs(t, err, sentinel)
	require.True(t, HasCode(err, CodeStateConflict))
	require.False(t, stdErrors.Is(err, New(CodeStateConflict, "other")))
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "no entry")
	got := As(err)
	require.NotNil(t, got)
	require.Equal(t, CodeForbidden, got.Code())
	require.Nil(t, As(nil))
	require.Equal(t, CodeInternal, CodeOf(stdErrors.New("plain")))
}
