package utils

import (
	"net/url"
	"strings"
)

// IsWebURL checks if a string is an absolute http or https URL with a host
func IsWebURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}
	return u.Host != ""
}

// ResolveURL resolves href against base using standard reference
// resolution. Stray percent signs and control characters are escaped before
// a second attempt; an href that still does not parse is returned as is.
func ResolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil {
		ref, err = url.Parse(escapeInvalid(href))
		if err != nil {
			return href
		}
	}
	return base.ResolveReference(ref).String()
}

// escapeInvalid percent-encodes control bytes and any '%' that does not
// start a valid escape sequence.
func escapeInvalid(s string) string {
	const hexDigits = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && !(i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])):
			b.WriteString("%25")
		case c < 0x20 || c == 0x7f:
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// NormalizeURL normalizes a URL for consistent comparison
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "/" && u.RawQuery == "" {
		u.Path = ""
	}
	return strings.TrimSuffix(u.String(), "/")
}

// CleanText collapses runs of whitespace into single spaces and trims the result
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
