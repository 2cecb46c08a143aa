package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-journal/internal/errors"
)

func TestHTTPVIXProviderCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": 27.4, "timestamp": "2026-03-10T14:30:00Z"}`))
	}))
	defer server.Close()

	p := NewHTTPVIXProvider(server.URL)
	got, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 27.4, got.Value)
	assert.Equal(t, 2026, got.Timestamp.Year())
}

func TestHTTPVIXProviderDefaultsTimestamp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": 18.2}`))
	}))
	defer server.Close()

	p := NewHTTPVIXProvider(server.URL)
	got, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Timestamp.IsZero())
}

func TestHTTPVIXProviderFailures(t *testing.T) {
	t.Run("no source configured", func(t *testing.T) {
		p := NewHTTPVIXProvider("")
		_, err := p.Current(context.Background())
		require.Error(t, err)
		var cerr *errors.CollaboratorError
		assert.True(t, errors.As(err, &cerr))
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		p := NewHTTPVIXProvider(server.URL)
		_, err := p.Current(context.Background())
		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		p := NewHTTPVIXProvider(server.URL)
		_, err := p.Current(context.Background())
		assert.Error(t, err)
	})
}
