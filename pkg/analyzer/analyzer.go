package analyzer

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/amosWeiskopf/linksmith/internal/models"
	"github.com/amosWeiskopf/linksmith/pkg/utils"
)

// Analyzer summarizes an extracted link list
type Analyzer struct {
	config *Config
}

// Config holds analyzer configuration
type Config struct {
	TopDomains int // Number of external domains reported, zero for all
}

// Summary describes where the links of a page point
type Summary struct {
	Total      int           `json:"total"`
	Internal   int           `json:"internal"`
	External   int           `json:"external"`
	NonWeb     int           `json:"non_web"`
	Unique     int           `json:"unique"`
	TopDomains []DomainCount `json:"top_domains"`
}

// DomainCount is the number of links pointing at one external host
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// New creates a new Analyzer instance
func New() *Analyzer {
	return &Analyzer{
		config: &Config{TopDomains: 10},
	}
}

// NewWithConfig creates an Analyzer with custom configuration
func NewWithConfig(config *Config) *Analyzer {
	return &Analyzer{config: config}
}

// Summarize classifies links relative to sourceURL. A link is internal when
// it shares the source's registrable domain.
func (a *Analyzer) Summarize(sourceURL string, links []models.Link) (*Summary, error) {
	source, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	sourceSite := siteOf(source.Hostname())

	summary := &Summary{Total: len(links)}
	unique := make(map[string]bool)
	domainCounts := make(map[string]int)

	for _, link := range links {
		unique[utils.NormalizeURL(link.URL)] = true

		if !utils.IsWebURL(link.URL) {
			summary.NonWeb++
			continue
		}
		u, err := url.Parse(link.URL)
		if err != nil {
			summary.NonWeb++
			continue
		}

		host := strings.ToLower(u.Hostname())
		if siteOf(host) == sourceSite {
			summary.Internal++
			continue
		}
		summary.External++
		domainCounts[host]++
	}
	summary.Unique = len(unique)

	for domain, count := range domainCounts {
		summary.TopDomains = append(summary.TopDomains, DomainCount{Domain: domain, Count: count})
	}
	sort.Slice(summary.TopDomains, func(i, j int) bool {
		if summary.TopDomains[i].Count == summary.TopDomains[j].Count {
			return summary.TopDomains[i].Domain < summary.TopDomains[j].Domain
		}
		return summary.TopDomains[i].Count > summary.TopDomains[j].Count
	})
	if a.config.TopDomains > 0 && len(summary.TopDomains) > a.config.TopDomains {
		summary.TopDomains = summary.TopDomains[:a.config.TopDomains]
	}

	return summary, nil
}

// siteOf returns the eTLD+1 of host, or host itself when there is none
// (localhost, bare TLDs).
func siteOf(host string) string {
	host = strings.ToLower(host)
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}
