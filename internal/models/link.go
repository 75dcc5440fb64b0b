package models

import "fmt"

// CSVHeader is the first record of every CSV link file
var CSVHeader = []string{"Link Text", "URL"}

// Link represents a hyperlink found on the source page
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ExtractionResult is the outcome of a single extraction. Exactly one of
// Err or the success payload (Links, Path) is meaningful.
type ExtractionResult struct {
	SourceURL string           `json:"source_url"`
	PageTitle string           `json:"page_title,omitempty"`
	Links     []Link           `json:"links"`
	Path      string           `json:"path,omitempty"`
	Err       *ExtractionError `json:"error,omitempty"`
}

// Succeeded reports whether the links were extracted and written
func (r *ExtractionResult) Succeeded() bool {
	return r.Err == nil
}

// Message returns the human-readable status line for the caller
func (r *ExtractionResult) Message() string {
	if r.Err != nil {
		return r.Err.UserMessage()
	}
	if r.PageTitle != "" {
		return fmt.Sprintf("Extracted %d links from %q and saved to '%s'", len(r.Links), r.PageTitle, r.Path)
	}
	return fmt.Sprintf("Extracted %d links and saved to '%s'", len(r.Links), r.Path)
}
