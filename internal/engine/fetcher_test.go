package engine_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

const davCard = "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Ada Lovelace\r\nBDAY:1815-12-10\r\nEND:VCARD\r\n"

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer func() { _ = rc.Close() }()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(body)
}

func TestHTTPFetcher_SendsCredentialsAndAgent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, "ada", user)
		assert.Equal(t, "engine", pass)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, davCard)
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL+"/cards?token=x", "ada", "engine")

	require.NoError(t, err)
	assert.Equal(t, davCard, readAll(t, rc))
}

func TestHTTPFetcher_AnonymousHasNoAuthHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
		_, _ = io.WriteString(w, davCard)
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")

	require.NoError(t, err)
	_ = readAll(t, rc)
}

func TestHTTPFetcher_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		url     string
		wantErr string
	}{
		{name: "NotFound", status: http.StatusNotFound, wantErr: "404"},
		{name: "Unauthorized", status: http.StatusUnauthorized, wantErr: "401"},
		{name: "ServerError", status: http.StatusBadGateway, wantErr: "502"},
		{name: "ControlChar", url: string([]byte{0x7f}), wantErr: config.ErrInvalidURL},
		{name: "FTP", url: "ftp://example.com/file.vcf", wantErr: config.ErrProtocol},
		{name: "File", url: "file:///etc/passwd", wantErr: config.ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.url
			if target == "" {
				ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(tt.status)
				}))
				defer ts.Close()
				target = ts.URL
			}

			rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), target, "", "")

			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPFetcher_HonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := engine.NewHTTPFetcher().Fetch(ctx, ts.URL, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_TruncatesAtMaxBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "0123456789")
	}))
	defer ts.Close()

	fetcher := engine.NewHTTPFetcher(engine.WithMaxBytes(4), engine.WithHTTPClient(ts.Client()))
	rc, err := fetcher.Fetch(context.Background(), ts.URL, "", "")

	require.NoError(t, err)
	assert.Equal(t, "0123", readAll(t, rc))
}
