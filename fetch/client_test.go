package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func TestFetchReturnsDecodedHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>한글 본문</body></html>"))
	}))
	defer server.Close()

	client := NewClient()
	html, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "한글 본문")
}

func TestFetchDecodesMislabeledEUCKR(t *testing.T) {
	// EUC-KR bytes served with a UTF-8 content type, the usual breakage.
	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte("금리 동결 소식"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(encoded)
	}))
	defer server.Close()

	client := NewClient()
	html, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "금리 동결 소식")
}

func TestFetchRawUsesCrawlerUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Googlebot")
		_, _ = w.Write([]byte("<html><body>raw page</body></html>"))
	}))
	defer server.Close()

	client := NewClient()
	html, err := client.FetchRaw(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "raw page")
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestFetchRawToleratesSelfSignedTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>tls page</body></html>"))
	}))
	defer server.Close()

	client := NewClient()
	html, err := client.FetchRaw(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "tls page")
}

func TestDecodeHTMLPrefersCleanUTF8(t *testing.T) {
	text := decodeHTML([]byte("plain utf-8 한글"), "text/html; charset=utf-8")
	assert.Equal(t, "plain utf-8 한글", text)
}
