package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/amosWeiskopf/linksmith/internal/models"
	"github.com/amosWeiskopf/linksmith/pkg/utils"
)

// anchorSelector matches hyperlink elements that carry an href attribute,
// whatever its value.
const anchorSelector = "a[href]"

// ParseDocument parses a UTF-8 HTML body. Malformed markup is repaired the
// way browsers do it, so only read failures produce an error.
func ParseDocument(body []byte) (*goquery.Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// ExtractLinks returns the first maxLinks anchors of doc in document order,
// each with its trimmed text and href resolved against baseURL. Every anchor
// is collected before truncating. Duplicates are kept.
func ExtractLinks(doc *goquery.Document, baseURL string, maxLinks int) ([]models.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	links := make([]models.Link, 0)
	doc.Find(anchorSelector).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, models.Link{
			Text: strings.TrimSpace(s.Text()),
			URL:  utils.ResolveURL(base, href),
		})
	})

	if maxLinks < 0 {
		maxLinks = 0
	}
	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links, nil
}

// PageTitle returns the page title from trafilatura's metadata, falling back
// to the first <title> element.
func PageTitle(body []byte, doc *goquery.Document, baseURL string) string {
	opts := trafilatura.Options{}
	if u, err := url.Parse(baseURL); err == nil {
		opts.OriginalURL = u
	}
	if result, err := trafilatura.Extract(bytes.NewReader(body), opts); err == nil && result != nil {
		if title := utils.CleanText(result.Metadata.Title); title != "" {
			return title
		}
	}
	return utils.CleanText(doc.Find("title").First().Text())
}
