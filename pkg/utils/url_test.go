package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWebURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"  https://example.com  ", true},
		{"ftp://example.com", false},
		{"mailto:me@example.com", false},
		{"/relative/path", false},
		{"example.com", false},
		{"https://", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWebURL(tt.raw))
		})
	}
}

func TestResolveURL(t *testing.T) {
	base, err := url.Parse("https://example.com/dir/page.html")
	require.NoError(t, err)

	tests := []struct {
		name string
		href string
		want string
	}{
		{"root relative", "/about", "https://example.com/about"},
		{"path relative", "other.html", "https://example.com/dir/other.html"},
		{"parent relative", "../up.html", "https://example.com/up.html"},
		{"absolute", "https://other.com/x", "https://other.com/x"},
		{"scheme relative", "//cdn.example.org/lib.js", "https://cdn.example.org/lib.js"},
		{"query only", "?q=1", "https://example.com/dir/page.html?q=1"},
		{"fragment only", "#top", "https://example.com/dir/page.html#top"},
		{"empty", "", "https://example.com/dir/page.html"},
		{"surrounding whitespace", "  /about\n", "https://example.com/about"},
		{"mailto", "mailto:me@example.com", "mailto:me@example.com"},
		{"stray percent", "/sale/100%-off", "https://example.com/sale/100%25-off"},
		{"bad escape", "docs/a%zz.html", "https://example.com/dir/docs/a%25zz.html"},
		{"trailing percent", "/p%", "https://example.com/p%25"},
		{"control character", "/x\x01y", "https://example.com/x%01y"},
		{"valid escape kept", "/a%20b%zz", "https://example.com/a%20b%25zz"},
		{"malformed host kept verbatim", "http://[::1", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveURL(base, tt.href))
		})
	}
}

func TestResolveURLIsAbsolute(t *testing.T) {
	base, err := url.Parse("https://example.com/dir/page.html")
	require.NoError(t, err)

	hrefs := []string{"/a", "b", "../c", "?q", "#f", "", "/100%", "x%zz", "/\x7fy", "a b", "/\tz"}
	for _, href := range hrefs {
		got := ResolveURL(base, href)
		u, err := url.Parse(got)
		require.NoError(t, err, "href %q resolved to %q", href, got)
		assert.True(t, u.IsAbs(), "href %q resolved to %q", href, got)
		assert.Equal(t, "example.com", u.Host, "href %q", href)
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com", NormalizeURL("HTTPS://Example.COM/"))
	assert.Equal(t, "https://example.com/a", NormalizeURL("https://example.com/a/#frag"))
	assert.Equal(t, "https://example.com/a?b=1", NormalizeURL("https://example.com/a?b=1"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "hello world", CleanText("  hello \n\t world  "))
	assert.Equal(t, "", CleanText(" \n "))
}
