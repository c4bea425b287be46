package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

type registerBody struct {
	Username string `json:"username" validate:"required,min=3,username"`
	Email    string `json:"email" validate:"omitempty,basic_email"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice","email":"a@b.co"}`))
	var body registerBody
	require.NoError(t, DecodeJSONBody(req, &body))
	require.Equal(t, "alice", body.Username)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice","admin":true}`))
	var body registerBody
	err := DecodeJSONBody(req, &body)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	var body registerBody
	err := DecodeJSONBody(req, &body)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	require.Equal(t, "request body is required", pkgerrors.As(err).Message())
}

func TestDecodeJSONBodyFieldDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a b","email":"nope"}`))
	var body registerBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details := typed.Details().(map[string]string)
	require.Equal(t, "may only contain letters, digits, dot, dash and underscore", details["username"])
	require.Equal(t, "must be a valid email", details["email"])
}

func TestParseURLInt64(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")
	req := httptest.NewRequest(http.MethodGet, "/todos/42", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	id, err := ParseURLInt64(req, "id")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	rctx.URLParams = chi.RouteParams{}
	rctx.URLParams.Add("id", "abc")
	_, err = ParseURLInt64(req, "id")
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5", nil)
	v, err := ParseQueryInt(req, "limit", 10, 1, 50)
	require.NoError(t, err)
	require.Equal(t, 5, v)

	req = httptest.NewRequest(http.MethodGet, "/?limit=500", nil)
	_, err = ParseQueryInt(req, "limit", 10, 1, 50)
	require.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	require.Equal(t, "abc", BearerToken("Bearer abc"))
	require.Equal(t, "abc", BearerToken("bearer   abc "))
	require.Equal(t, "abc", BearerToken("abc"))
	require.Empty(t, BearerToken("  "))
}

func TestSanitizeString(t *testing.T) {
	require.Equal(t, "abc", SanitizeString("  abcdef ", 3))
	require.Equal(t, "abc", SanitizeString("abc", 0))
}
