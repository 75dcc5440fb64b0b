package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<a href="/about">About</a>
			<a href="https://external.org/page">External</a>
			<a href="mailto:hi@example.com">Mail</a>
		</body></html>`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtractCommand(t *testing.T) {
	server := newPageServer(t)
	dir := t.TempDir()

	out, err := runCLI(t, "extract", server.URL, "--out", dir, "--filename", "page.csv", "--max", "2")
	require.NoError(t, err)

	path := filepath.Join(dir, "page.csv")
	assert.Contains(t, out, "Extracted 2 links")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Link Text,URL\r\nAbout,"+server.URL+"/about\r\nExternal,https://external.org/page\r\n", string(data))
}

func TestExtractCommandPrintAndSummary(t *testing.T) {
	server := newPageServer(t)

	out, err := runCLI(t, "extract", server.URL, "-o", t.TempDir(), "--print", "--summary")
	require.NoError(t, err)

	assert.Contains(t, out, "Link Text")
	assert.Contains(t, out, "https://external.org/page")
	assert.Contains(t, out, "Internal")
	assert.Contains(t, out, "external.org")
}

func TestExtractCommandFetchFailure(t *testing.T) {
	server := newPageServer(t)
	dir := t.TempDir()

	_, err := runCLI(t, "extract", server.URL+"/missing", "--out", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to fetch page")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtractCommandRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"relative url", []string{"extract", "/about"}, "URL must be an absolute http or https URL"},
		{"zero max", []string{"extract", "https://example.com", "--max", "0"}, "max_links must be positive"},
		{"bad format", []string{"extract", "https://example.com", "--format", "xml"}, "output.format"},
		{"empty filename", []string{"extract", "https://example.com", "--filename", ""}, "Filename is required"},
		{"missing url", []string{"extract"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
