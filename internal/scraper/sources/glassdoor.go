package sources

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscout/internal/config"
	"jobscout/internal/extract"
	"jobscout/internal/fetch"
	"jobscout/internal/logging"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

const (
	glassdoorBaseURL  = "https://www.glassdoor.com/Job/jobs.htm"
	glassdoorOrigin   = "https://www.glassdoor.com"
	glassdoorPageSize = 30
)

var glassdoorTypeCodes = map[string]string{
	models.JobTypeFullTime:   "fulltime",
	models.JobTypePartTime:   "parttime",
	models.JobTypeInternship: "internship",
	models.JobTypeContract:   "contract",
	models.JobTypeTemporary:  "temporary",
}

var (
	glassdoorCardRe     = regexp.MustCompile(`(?i)JobsList_jobListItem|react-job-listing`)
	glassdoorTitleRe    = regexp.MustCompile(`(?i)jobTitle|JobCard_jobTitle`)
	glassdoorCompanyRe  = regexp.MustCompile(`(?i)EmployerProfile_employerName|JobCard_companyName`)
	glassdoorLocationRe = regexp.MustCompile(`(?i)JobCard_location`)
	glassdoorSalaryRe   = regexp.MustCompile(`(?i)JobCard_salaryEstimate`)
	glassdoorAgeRe      = regexp.MustCompile(`(?i)JobCard_listingAge`)
	glassdoorListingRe  = regexp.MustCompile(`jobListingId=(\d+)`)
)

// Glassdoor scrapes Glassdoor search results. The board has strong
// anti-scraping defenses, so this adapter runs with the longest delay and
// sends the full browser navigation header set.
type Glassdoor struct {
	client *fetch.Client
	logger logging.Logger
	maxCap int
}

// NewGlassdoor creates the Glassdoor adapter.
func NewGlassdoor(cfg *config.Config) *Glassdoor {
	return &Glassdoor{
		client: fetch.NewClient(fetch.Options{
			Delay:      cfg.Scraper.Delays.Glassdoor,
			Timeout:    cfg.Scraper.RequestTimeout,
			MaxRetries: cfg.Scraper.MaxRetries,
			UserAgent:  cfg.Scraper.UserAgent,
			ExtraHeaders: map[string]string{
				"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
				"Cache-Control":             "max-age=0",
				"Sec-Ch-Ua":                 `"Not_A Brand";v="8", "Chromium";v="120"`,
				"Sec-Ch-Ua-Mobile":          "?0",
				"Sec-Ch-Ua-Platform":        `"macOS"`,
				"Sec-Fetch-Dest":            "document",
				"Sec-Fetch-Mode":            "navigate",
				"Sec-Fetch-Site":            "none",
				"Sec-Fetch-User":            "?1",
				"Upgrade-Insecure-Requests": "1",
			},
		}),
		logger: logging.GetGlobalLogger(),
		maxCap: cfg.Search.MaxResultsPerSource,
	}
}

func (a *Glassdoor) Name() string { return "glassdoor" }

func (a *Glassdoor) Search(ctx context.Context, req *models.SearchRequest) ([]models.JobPosting, error) {
	max := req.MaxResults
	if max <= 0 || max > a.maxCap {
		max = a.maxCap
	}

	var typeCodes []string
	for _, jt := range req.JobTypes {
		if code, ok := glassdoorTypeCodes[jt]; ok {
			typeCodes = append(typeCodes, code)
		}
	}

	var jobs []models.JobPosting
	for page := 1; len(jobs) < max; page++ {
		params := url.Values{
			"sc.keyword": {req.Query},
			"locT":       {"C"},
			"locKeyword": {req.Location},
			"radius":     {strconv.Itoa(req.RadiusMiles)},
			// Last 7 days keeps student searches fresh.
			"fromAge": {"7"},
		}
		if len(typeCodes) > 0 {
			params.Set("jobType", strings.Join(typeCodes, ","))
		}
		if page > 1 {
			params.Set("p", strconv.Itoa(page))
		}

		html, err := a.client.Get(ctx, glassdoorBaseURL, params)
		if err != nil {
			a.logger.Warn("glassdoor page fetch failed", map[string]interface{}{
				"page": page, "error": err.Error(),
			})
			break
		}

		pageJobs := a.parsePage(html)
		if len(pageJobs) == 0 {
			break
		}
		jobs = append(jobs, pageJobs...)

		if len(pageJobs) < glassdoorPageSize {
			break
		}
	}

	return capResults(stamp(a.Name(), utils.FilterValidPostings(jobs)), max), nil
}

// parsePage reads HTML cards first and falls back to the page's JSON-LD
// structured data, which Glassdoor ships on listing pages.
func (a *Glassdoor) parsePage(html string) []models.JobPosting {
	page := extract.NewPage(glassdoorBaseURL, html)
	if page == nil {
		return nil
	}

	var jobs []models.JobPosting
	cards := a.findCards(page.Doc)
	for _, card := range cards {
		if job, ok := a.parseCard(card); ok {
			jobs = append(jobs, job)
		}
	}
	if len(jobs) == 0 {
		jobs = extract.ExtractJSONLD(page)
	}
	return jobs
}

func (a *Glassdoor) findCards(doc *goquery.Document) []*goquery.Selection {
	var cards []*goquery.Selection
	doc.Find("li,div").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if glassdoorCardRe.MatchString(class) {
			cards = append(cards, s)
		}
	})
	if len(cards) == 0 {
		doc.Find(`div[data-test="jobListing"]`).Each(func(_ int, s *goquery.Selection) {
			cards = append(cards, s)
		})
	}
	if len(cards) == 0 {
		doc.Find("[data-id][data-normalize-job-title]").Each(func(_ int, s *goquery.Selection) {
			cards = append(cards, s)
		})
	}
	return cards
}

func (a *Glassdoor) parseCard(card *goquery.Selection) (models.JobPosting, bool) {
	title := ""
	if elem := findClass(card, "a", glassdoorTitleRe); elem != nil {
		title = utils.CleanText(elem.Text())
	}
	if title == "" {
		title = utils.CleanText(card.Find(`div[data-test="job-title"]`).Text())
	}
	if title == "" {
		title, _ = card.Attr("data-normalize-job-title")
	}
	if title == "" {
		return models.JobPosting{}, false
	}

	jobURL, _ := card.Find("a[href]").First().Attr("href")
	if strings.HasPrefix(jobURL, "/") {
		jobURL = glassdoorOrigin + jobURL
	}

	sourceID, _ := card.Attr("data-id")
	if sourceID == "" {
		sourceID, _ = card.Attr("data-job-id")
	}
	if sourceID == "" {
		if m := glassdoorListingRe.FindStringSubmatch(jobURL); m != nil {
			sourceID = m[1]
		} else {
			sourceID = utils.GenerateSourceID(title, jobURL)
		}
	}

	company := utils.CleanText(card.Find(`div[data-test="employer-short-name"]`).Text())
	if company == "" {
		company = utils.CleanText(textByClass(card, "span", glassdoorCompanyRe))
	}
	if company == "" {
		company = "Unknown"
	}

	location := utils.CleanText(card.Find(`div[data-test="emp-location"]`).Text())
	if location == "" {
		location = utils.CleanText(textByClass(card, "span", glassdoorLocationRe))
	}

	job := models.JobPosting{
		SourceID: sourceID,
		Title:    title,
		Company:  company,
		Location: location,
		URL:      jobURL,
	}

	salaryText := utils.CleanText(card.Find(`div[data-test="detailSalary"]`).Text())
	if salaryText == "" {
		salaryText = utils.CleanText(textByClass(card, "span", glassdoorSalaryRe))
	}
	extract.ApplySalary(&job, salaryText)

	age := utils.CleanText(card.Find(`div[data-test="job-age"]`).Text())
	if age == "" {
		age = utils.CleanText(textByClass(card, "span", glassdoorAgeRe))
	}
	job.PostedDate = extract.ParseRelativeDate(age)

	return job, true
}
