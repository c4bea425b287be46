package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shoptodo/shoptodo-backend/internal/shop"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
	"github.com/shoptodo/shoptodo-backend/pkg/metrics"
	"github.com/stretchr/testify/require"
)

func TestRequestIDPropagatesOrGenerates(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-1")
	handler.ServeHTTP(rec, req)
	require.Equal(t, "req-1", rec.Header().Get(requestIDHeader))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, rec.Header().Get(requestIDHeader), 36)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	handler.ServeHTTP(rec, req)
	require.Len(t, rec.Header().Get(requestIDHeader), 36)
}

func TestRecovererWritesInternalError(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestLoggingRecordsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf, Format: "json"})
	reg := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(Logging(logg, httpMetrics))
	r.Get("/api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/7", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Contains(t, buf.String(), `"route":"/api/orders/{id}"`)
	require.Contains(t, buf.String(), `"status":418`)
	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, fam := range families {
		if fam.GetName() == "shoptodo_http_requests_total" {
			found = true
			require.Len(t, fam.GetMetric(), 1)
		}
	}
	require.True(t, found)
}

func TestShopResolvesPerUser(t *testing.T) {
	registry := shop.NewRegistry(shop.RegistryParams{})

	var got *shop.Shop
	handler := Shop(registry, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ShopFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(context.Background(), "id-1", "alice", "jti-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	user, ok := got.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "alice", user.Username)

	cached, ok := registry.Lookup("alice")
	require.True(t, ok)
	require.Same(t, got, cached)
}

func TestShopRequiresUsername(t *testing.T) {
	registry := shop.NewRegistry(shop.RegistryParams{})
	handler := Shop(registry, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
