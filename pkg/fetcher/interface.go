package fetcher

import (
	"context"
	"time"
)

// Fetcher defines the interface for retrieving a single page
type Fetcher interface {
	// Fetch issues one GET request and returns the decoded page
	Fetch(ctx context.Context, pageURL string) (*Page, error)
}

// Options contains configuration for the fetcher
type Options struct {
	Timeout   time.Duration // Request timeout, zero means no client timeout
	UserAgent string        // User agent string, empty keeps the client default
}

// Page is a fetched document with its body decoded to UTF-8
type Page struct {
	URL         string // URL that was requested
	FinalURL    string // URL after redirects
	StatusCode  int
	ContentType string
	Body        []byte
}
