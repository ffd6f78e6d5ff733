package sources

import (
	"context"
	"net/url"
	"regexp"
	"strconv"

	"jobscout/internal/config"
	"jobscout/internal/extract"
	"jobscout/internal/fetch"
	"jobscout/internal/logging"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

const (
	collegeRecruiterBaseURL  = "https://www.collegerecruiter.com/job-search"
	collegeRecruiterPageSize = 25
)

var collegeRecruiterJobIDRe = regexp.MustCompile(`/job/(\d+)`)

// CollegeRecruiter scrapes collegerecruiter.com, an entry-level and
// student job board. The site is server-rendered with Next.js, so the
// embedded-JSON strategy is tried first, then JSON-LD, then generic HTML
// patterns.
type CollegeRecruiter struct {
	client *fetch.Client
	logger logging.Logger
	maxCap int
}

// NewCollegeRecruiter creates the CollegeRecruiter adapter.
func NewCollegeRecruiter(cfg *config.Config) *CollegeRecruiter {
	return &CollegeRecruiter{
		client: fetch.NewClient(fetch.Options{
			Delay:      cfg.Scraper.Delays.CollegeRecruiter,
			Timeout:    cfg.Scraper.RequestTimeout,
			MaxRetries: cfg.Scraper.MaxRetries,
			UserAgent:  cfg.Scraper.UserAgent,
		}),
		logger: logging.GetGlobalLogger(),
		maxCap: cfg.Search.MaxResultsPerSource,
	}
}

func (a *CollegeRecruiter) Name() string { return "collegerecruiter" }

func (a *CollegeRecruiter) Search(ctx context.Context, req *models.SearchRequest) ([]models.JobPosting, error) {
	max := req.MaxResults
	if max <= 0 || max > a.maxCap {
		max = a.maxCap
	}

	query := req.Query
	if query == "" {
		query = "student"
	}
	location := req.Location
	if location == "" {
		location = "US"
	}

	var jobs []models.JobPosting
	for page := 1; len(jobs) < max; page++ {
		params := url.Values{
			"keyword":  {query},
			"location": {location},
		}
		if page > 1 {
			params.Set("page", strconv.Itoa(page))
		}

		html, err := a.client.Get(ctx, collegeRecruiterBaseURL, params)
		if err != nil {
			a.logger.Warn("collegerecruiter page fetch failed", map[string]interface{}{
				"page": page, "error": err.Error(),
			})
			break
		}

		pageJobs := a.parsePage(html)
		if len(pageJobs) == 0 {
			break
		}

		// The board has no server-side type filter; drop mismatches here.
		pageJobs = filterByType(pageJobs, req)
		jobs = append(jobs, pageJobs...)

		if len(pageJobs) < collegeRecruiterPageSize {
			break
		}
	}

	return capResults(stamp(a.Name(), utils.FilterValidPostings(jobs)), max), nil
}

func (a *CollegeRecruiter) parsePage(html string) []models.JobPosting {
	page := extract.NewPage(collegeRecruiterBaseURL, html)
	if page == nil {
		return nil
	}

	// Hydration payload first: when present it is the complete result set.
	if jobs := extract.ExtractEmbeddedJSON(page); len(jobs) > 0 {
		return a.assignIDs(jobs)
	}

	var jobs []models.JobPosting
	jobs = append(jobs, extract.ExtractJSONLD(page)...)
	if len(jobs) == 0 {
		jobs = extract.ExtractHTMLPatterns(page)
	}
	return a.assignIDs(jobs)
}

// assignIDs prefers the board's own /job/<id> URL scheme over hashes.
func (a *CollegeRecruiter) assignIDs(jobs []models.JobPosting) []models.JobPosting {
	for i := range jobs {
		if m := collegeRecruiterJobIDRe.FindStringSubmatch(jobs[i].URL); m != nil {
			jobs[i].SourceID = m[1]
		}
	}
	return jobs
}
