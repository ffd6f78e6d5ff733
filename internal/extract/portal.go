package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// PortalMarker tags synthetic portal-redirect records so downstream
// filters can keep them despite their non-standard shape.
const PortalMarker = "portal"

// PortalSystem describes one third-party recruiting product a career page
// may embed. The vocabulary is configuration data: products come and go,
// so deployments can extend the default list.
type PortalSystem struct {
	// Name is the product's display name, e.g. "Handshake".
	Name string `yaml:"name"`
	// Keywords are lowercase substrings matched against iframe srcs,
	// anchor hrefs, link text, and page text.
	Keywords []string `yaml:"keywords"`
	// Domain, when set, is the product's canonical domain. Matched against
	// hrefs directly and used to synthesize a portal URL from the
	// organization name when only a text mention is found.
	Domain string `yaml:"domain"`
}

// DefaultPortalSystems is the built-in vocabulary of known products.
var DefaultPortalSystems = []PortalSystem{
	{Name: "Handshake", Keywords: []string{"handshake", "hirebing"}, Domain: "joinhandshake.com"},
	{Name: "Symplicity", Keywords: []string{"symplicity"}},
	{Name: "Simplicity", Keywords: []string{"simplicity"}},
	{Name: "12Twenty", Keywords: []string{"12twenty"}},
}

// PortalDetector recognizes pages that are thin wrappers around an
// authenticated third-party job system. It runs before every other HTML
// strategy: such pages carry no directly scrapable listings, so running
// the rest would waste work and risk surfacing noise.
type PortalDetector struct {
	systems []PortalSystem
}

// NewPortalDetector builds a detector over the given vocabulary, falling
// back to the defaults when none is supplied.
func NewPortalDetector(systems ...PortalSystem) *PortalDetector {
	if len(systems) == 0 {
		systems = DefaultPortalSystems
	}
	return &PortalDetector{systems: systems}
}

// Detect inspects a page for portal markers: first iframes, then anchors,
// then a best-effort scan of the page text. On a text-only match the
// portal URL is synthesized by slugifying the organization name into the
// product's conventional subdomain. Returns nil when the page looks like
// a direct listing page.
func (d *PortalDetector) Detect(p *Page) *models.JobPosting {
	if p == nil || p.Doc == nil {
		return nil
	}

	if job := d.detectIframe(p); job != nil {
		return job
	}
	if job := d.detectLinks(p); job != nil {
		return job
	}
	return d.detectPageText(p)
}

func (d *PortalDetector) detectIframe(p *Page) *models.JobPosting {
	var found *models.JobPosting
	p.Doc.Find("iframe[src]").EachWithBreak(func(_ int, iframe *goquery.Selection) bool {
		src, _ := iframe.Attr("src")
		lower := strings.ToLower(src)
		for _, sys := range d.systems {
			if matchesKeyword(lower, sys) {
				found = d.redirectRecord(p, sys, src, true)
				return false
			}
		}
		return true
	})
	return found
}

func (d *PortalDetector) detectLinks(p *Page) *models.JobPosting {
	var found *models.JobPosting
	p.Doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "javascript:") {
			return true
		}
		text := strings.ToLower(a.Text())
		for _, sys := range d.systems {
			if sys.Domain != "" && strings.Contains(lower, sys.Domain) {
				found = d.redirectRecord(p, sys, href, true)
				return false
			}
			if (matchesKeyword(lower, sys) || matchesKeyword(text, sys)) && strings.HasPrefix(lower, "http") {
				found = d.redirectRecord(p, sys, href, true)
				return false
			}
		}
		return true
	})
	return found
}

func (d *PortalDetector) detectPageText(p *Page) *models.JobPosting {
	pageText := strings.ToLower(p.Doc.Text())
	for _, sys := range d.systems {
		if sys.Domain == "" || !matchesKeyword(pageText, sys) {
			continue
		}
		slug := strings.ReplaceAll(utils.Slugify(p.Org), "-", "")
		slug = strings.ReplaceAll(slug, "university", "")
		portalURL := fmt.Sprintf("https://%s.%s", slug, sys.Domain)
		return d.redirectRecord(p, sys, portalURL, true)
	}
	return nil
}

// redirectRecord builds the single synthetic posting returned for a
// portal page. The title is intentionally non-empty and descriptive so
// the record survives validity filtering.
func (d *PortalDetector) redirectRecord(p *Page, sys PortalSystem, portalURL string, requiresAuth bool) *models.JobPosting {
	org := p.Org
	if org == "" {
		org = "this organization"
	}

	description := fmt.Sprintf("This organization uses %s for job postings. Visit the portal directly to browse jobs.", sys.Name)
	if requiresAuth {
		description = fmt.Sprintf(
			"This organization uses %s for job postings, which requires institutional login. "+
				"To search %s jobs: 1. Log into %s with your credentials. "+
				"2. In settings, enable authentication and paste your session cookie. "+
				"3. Or visit the link directly to browse jobs.",
			sys.Name, sys.Name, portalURL)
	}

	return &models.JobPosting{
		SourceID:    PortalMarker + "-" + utils.GenerateSourceID(org, sys.Name),
		Title:       fmt.Sprintf("Access %s jobs on %s", org, sys.Name),
		Company:     org,
		Description: description,
		URL:         portalURL,
	}
}

// IsPortalRedirect reports whether a posting is a synthetic portal record.
func IsPortalRedirect(job *models.JobPosting) bool {
	return strings.Contains(job.SourceID, PortalMarker) || strings.HasPrefix(job.Title, "Access ")
}

func matchesKeyword(haystack string, sys PortalSystem) bool {
	for _, kw := range sys.Keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
