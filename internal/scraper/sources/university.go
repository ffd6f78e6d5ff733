package sources

import (
	"context"
	"strings"

	"jobscout/internal/config"
	"jobscout/internal/extract"
	"jobscout/internal/fetch"
	"jobscout/internal/logging"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// University is the generic adapter for arbitrary university career-center
// pages. Unlike the fixed boards it is parameterized at construction time
// with an organization name and target URL, and supports an optional
// session cookie for boards behind institutional login.
//
// Supported page shapes: RSS/Atom feeds, JSON-LD structured data, common
// HTML listing patterns, plain table layouts, and third-party portal
// wrappers (Handshake and similar), which short-circuit into a single
// redirect record.
type University struct {
	org      string
	boardURL string
	client   *fetch.Client
	detector *extract.PortalDetector
	logger   logging.Logger
	maxCap   int
}

// NewUniversity creates a university board adapter for one institution.
func NewUniversity(cfg *config.Config, org, boardURL string, authCookie string) *University {
	var systems []extract.PortalSystem
	for _, sys := range cfg.Portal.Systems {
		systems = append(systems, extract.PortalSystem{
			Name:     sys.Name,
			Keywords: sys.Keywords,
			Domain:   sys.Domain,
		})
	}

	return &University{
		org:      org,
		boardURL: boardURL,
		client: fetch.NewClient(fetch.Options{
			Delay:      cfg.Scraper.Delays.University,
			Timeout:    cfg.Scraper.RequestTimeout,
			MaxRetries: cfg.Scraper.MaxRetries,
			UserAgent:  cfg.Scraper.UserAgent,
			Cookie:     authCookie,
		}),
		detector: extract.NewPortalDetector(systems...),
		logger:   logging.GetGlobalLogger(),
		maxCap:   cfg.Search.MaxResultsPerSource,
	}
}

// NewUniversityFromConfig builds the adapter from the configured
// institution, or nil when none is configured.
func NewUniversityFromConfig(cfg *config.Config) *University {
	if cfg.University.BaseURL == "" {
		return nil
	}
	cookie := ""
	if cfg.University.UseAuth {
		cookie = cfg.University.AuthCookie
	}
	name := cfg.University.Name
	if name == "" {
		name = "University"
	}
	return NewUniversity(cfg, name, cfg.University.BaseURL, cookie)
}

func (a *University) Name() string { return "university" }

func (a *University) Search(ctx context.Context, req *models.SearchRequest) ([]models.JobPosting, error) {
	if a.boardURL == "" {
		return nil, nil
	}
	max := req.MaxResults
	if max <= 0 || max > a.maxCap {
		max = a.maxCap
	}

	body, err := a.client.Get(ctx, a.boardURL, nil)
	if err != nil {
		a.logger.Warn("university board fetch failed", map[string]interface{}{
			"org": a.org, "url": a.boardURL, "error": err.Error(),
		})
		return nil, nil
	}

	var jobs []models.JobPosting
	if extract.IsFeedURL(a.boardURL) {
		jobs = extract.ExtractFeed(a.boardURL, body, a.org)
	} else {
		jobs = a.parsePage(body)
	}

	jobs = a.filterByQuery(jobs, req.Query)
	jobs = filterByType(jobs, req)
	jobs = a.filterValid(jobs)

	return capResults(stamp(a.Name(), jobs), max), nil
}

// parsePage runs the portal detector first: portal wrapper pages carry no
// scrapable listings, so a match short-circuits into one redirect record.
// Otherwise JSON-LD, HTML-pattern and table results are merged, with an
// in-page title dedup since university pages often render the same
// posting in more than one of those shapes.
func (a *University) parsePage(html string) []models.JobPosting {
	page := extract.NewPage(a.boardURL, html)
	if page == nil {
		return nil
	}
	page.Org = a.org

	if redirect := a.detector.Detect(page); redirect != nil {
		a.logger.Info("university board is a portal wrapper", map[string]interface{}{
			"org": a.org, "portal_url": redirect.URL,
		})
		return []models.JobPosting{*redirect}
	}

	var jobs []models.JobPosting
	jobs = append(jobs, extract.ExtractJSONLD(page)...)
	jobs = append(jobs, extract.ExtractHTMLPatterns(page)...)
	jobs = append(jobs, extract.ExtractTables(page)...)

	seen := make(map[string]bool, len(jobs))
	unique := jobs[:0]
	for _, job := range jobs {
		key := strings.ToLower(job.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, job)
	}
	return unique
}

// filterByQuery keeps postings whose title or description mentions the
// query. Portal redirect records always pass: they are the answer to any
// query for this institution.
func (a *University) filterByQuery(jobs []models.JobPosting, query string) []models.JobPosting {
	if query == "" {
		return jobs
	}
	q := strings.ToLower(query)

	kept := jobs[:0]
	for _, job := range jobs {
		if extract.IsPortalRedirect(&job) ||
			strings.Contains(strings.ToLower(job.Title), q) ||
			strings.Contains(strings.ToLower(job.Description), q) {
			kept = append(kept, job)
		}
	}
	return kept
}

// filterValid applies the masking filter, but portal redirect records are
// exempt: their synthetic shape is intentionally non-standard.
func (a *University) filterValid(jobs []models.JobPosting) []models.JobPosting {
	kept := jobs[:0]
	for i := range jobs {
		if extract.IsPortalRedirect(&jobs[i]) || utils.IsValidPosting(&jobs[i]) {
			kept = append(kept, jobs[i])
		}
	}
	return kept
}
