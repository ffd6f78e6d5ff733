package sources

import (
	"context"
	"net/url"
	"strings"

	"jobscout/internal/config"
	"jobscout/internal/extract"
	"jobscout/internal/fetch"
	"jobscout/internal/logging"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

const wayupBaseURL = "https://www.wayup.com/s/jobs-internships"

// WayUp scrapes wayup.com, a student and early-career platform. The
// search surface is a single page; postings come from generic HTML
// patterns plus any JSON-LD or hydration payload the page carries.
type WayUp struct {
	client *fetch.Client
	logger logging.Logger
	maxCap int
}

// NewWayUp creates the WayUp adapter.
func NewWayUp(cfg *config.Config) *WayUp {
	return &WayUp{
		client: fetch.NewClient(fetch.Options{
			Delay:      cfg.Scraper.Delays.WayUp,
			Timeout:    cfg.Scraper.RequestTimeout,
			MaxRetries: cfg.Scraper.MaxRetries,
			UserAgent:  cfg.Scraper.UserAgent,
		}),
		logger: logging.GetGlobalLogger(),
		maxCap: cfg.Search.MaxResultsPerSource,
	}
}

func (a *WayUp) Name() string { return "wayup" }

// wayupTypeParam maps the first supported requested type onto the
// board's job_type value.
func wayupTypeParam(requested []string) string {
	for _, jt := range requested {
		switch jt {
		case models.JobTypeInternship:
			return "internship"
		case models.JobTypePartTime:
			return "part-time"
		case models.JobTypeFullTime:
			return "full-time"
		}
	}
	return ""
}

func (a *WayUp) Search(ctx context.Context, req *models.SearchRequest) ([]models.JobPosting, error) {
	max := req.MaxResults
	if max <= 0 || max > a.maxCap {
		max = a.maxCap
	}

	query := req.Query
	if query == "" {
		query = "student"
	}

	params := url.Values{
		"keywords": {query},
		"location": {req.Location},
	}
	if jt := wayupTypeParam(req.JobTypes); jt != "" {
		params.Set("job_type", jt)
	}

	html, err := a.client.Get(ctx, wayupBaseURL, params)
	if err != nil {
		a.logger.Warn("wayup fetch failed", map[string]interface{}{"error": err.Error()})
		return nil, nil
	}

	jobs := a.parsePage(html)
	jobs = filterByType(jobs, req)

	return capResults(stamp(a.Name(), utils.FilterValidPostings(jobs)), max), nil
}

// parsePage merges the HTML-pattern results with whatever structured data
// the page embeds, deduplicating by title within the page.
func (a *WayUp) parsePage(html string) []models.JobPosting {
	page := extract.NewPage(wayupBaseURL, html)
	if page == nil {
		return nil
	}

	var jobs []models.JobPosting
	jobs = append(jobs, extract.ExtractHTMLPatterns(page)...)
	jobs = append(jobs, extract.ExtractJSONLD(page)...)
	jobs = append(jobs, extract.ExtractEmbeddedJSON(page)...)

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
