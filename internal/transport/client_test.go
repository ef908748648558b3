package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/aretw0/witgo/internal/transport"
	"github.com/aretw0/witgo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Headers(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := transport.New("secret-token",
		transport.WithBaseURL(srv.URL),
		transport.WithAPIVersion("20160516"),
	)
	err := c.Do(context.Background(), http.MethodGet, "/message", url.Values{"q": {"hi"}}, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", got.Get("Authorization"))
	assert.Equal(t, "application/vnd.wit.20160516+json", got.Get("Accept"))
}

func TestClient_DecodesInto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "weather in London", r.URL.Query().Get("q"))
		w.Write([]byte(`{"text":"weather in London","intents":[{"name":"get_forecast","confidence":0.99}]}`))
	}))
	defer srv.Close()

	c := transport.New("t", transport.WithBaseURL(srv.URL))

	var out domain.MessageResponse
	err := c.Do(context.Background(), http.MethodGet, "/message", url.Values{"q": {"weather in London"}}, nil, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "weather in London", out.Text)
	require.Len(t, out.Intents, 1)
	assert.Equal(t, "get_forecast", out.Intents[0].Name)
}

func TestClient_StatusAbove200IsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Bad auth"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := transport.New("bad", transport.WithBaseURL(srv.URL))
	err := c.Do(context.Background(), http.MethodGet, "/message", nil, nil, nil, nil)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Bad auth", apiErr.Message)
}

func TestClient_ErrorBodyOn200IsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"unknown app"}`))
	}))
	defer srv.Close()

	c := transport.New("t", transport.WithBaseURL(srv.URL))
	err := c.Do(context.Background(), http.MethodGet, "/message", nil, nil, nil, nil)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.Equal(t, "unknown app", apiErr.Message)
}

func TestClient_NetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Refuse connections.

	c := transport.New("t", transport.WithBaseURL(srv.URL))
	err := c.Do(context.Background(), http.MethodGet, "/message", nil, nil, nil, nil)

	var tErr *domain.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Contains(t, tErr.Op, "GET /message")
}

func TestClient_ExtraHeadersForwarded(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := transport.New("t", transport.WithBaseURL(srv.URL))
	hdr := http.Header{}
	hdr.Set("Content-Type", "audio/wav")
	err := c.Do(context.Background(), http.MethodPost, "/speech", nil, nil, hdr, nil)
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", got.Get("Content-Type"))
}
