// Package extract implements the independent parsing strategies the source
// adapters compose: embedded JSON blobs, JSON-LD structured data, generic
// HTML patterns, table layouts, RSS/Atom feeds, portal detection, and the
// salary and date parsers. Every strategy maps one fetched page to zero or
// more canonical postings and never returns an error: malformed input
// simply yields nothing, so the next strategy or page can still succeed.
package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"jobscout/pkg/models"
)

// Page is a fetched page handed to the extraction strategies.
type Page struct {
	URL string
	Doc *goquery.Document
	// Org is the organization display name for pages that belong to a
	// single institution (university boards). Used as the company fallback.
	Org string
}

// Strategy is the shared shape of every extraction technique. Adapters run
// strategies in priority order and merge or short-circuit per source policy.
type Strategy func(p *Page) []models.JobPosting

// NewPage parses raw HTML into a Page. A parse failure yields a nil page,
// which every strategy treats as "nothing found".
func NewPage(pageURL, html string) *Page {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return &Page{URL: pageURL, Doc: doc}
}

// ResolveURL turns a possibly-relative href into an absolute URL against
// the page's own origin. Already-absolute links pass through unchanged.
func (p *Page) ResolveURL(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	base, err := url.Parse(p.URL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// StripHTML reduces an HTML fragment to its plain text.
func StripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return doc.Text()
}

// Truncate bounds free text to at most n bytes, cutting on a rune
// boundary so truncated text stays valid UTF-8. Descriptions are capped
// to keep records from growing without bound.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// DescriptionLimit is the bound applied to scraped descriptions.
const DescriptionLimit = 500
