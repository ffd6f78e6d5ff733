package sources

import (
	"context"
	"net/url"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"jobscout/internal/config"
	"jobscout/internal/extract"
	"jobscout/internal/fetch"
	"jobscout/internal/logging"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

const (
	indeedBaseURL  = "https://www.indeed.com/jobs"
	indeedOrigin   = "https://www.indeed.com"
	indeedPageSize = 15
)

// Indeed job type codes. The board accepts a single jt value, so the
// first requested type wins.
var indeedTypeCodes = map[string]string{
	models.JobTypeFullTime:   "fulltime",
	models.JobTypePartTime:   "parttime",
	models.JobTypeInternship: "internship",
	models.JobTypeContract:   "contract",
	models.JobTypeTemporary:  "temporary",
}

var (
	indeedCardRe     = regexp.MustCompile(`(?i)job_seen_beacon|jobsearch-SerpJobCard|resultContent`)
	indeedTitleRe    = regexp.MustCompile(`(?i)jobTitle`)
	indeedCompanyRe  = regexp.MustCompile(`(?i)company`)
	indeedLocationRe = regexp.MustCompile(`(?i)location`)
	indeedSalaryRe   = regexp.MustCompile(`(?i)salary|estimated`)
	indeedMetaRe     = regexp.MustCompile(`(?i)metadata|attribute`)
	indeedSnippetRe  = regexp.MustCompile(`(?i)job-snippet`)
	indeedDateRe     = regexp.MustCompile(`(?i)date`)
	indeedJobKeyRe   = regexp.MustCompile(`jk=([a-f0-9]+)`)
)

// Indeed scrapes the Indeed public search results.
type Indeed struct {
	client *fetch.Client
	logger logging.Logger
	maxCap int
}

// NewIndeed creates the Indeed adapter.
func NewIndeed(cfg *config.Config) *Indeed {
	return &Indeed{
		client: fetch.NewClient(fetch.Options{
			Delay:      cfg.Scraper.Delays.Indeed,
			Timeout:    cfg.Scraper.RequestTimeout,
			MaxRetries: cfg.Scraper.MaxRetries,
			UserAgent:  cfg.Scraper.UserAgent,
		}),
		logger: logging.GetGlobalLogger(),
		maxCap: cfg.Search.MaxResultsPerSource,
	}
}

func (a *Indeed) Name() string { return "indeed" }

// Search pages through results sorted most-recent-first until the cap is
// reached or a short page signals the end.
func (a *Indeed) Search(ctx context.Context, req *models.SearchRequest) ([]models.JobPosting, error) {
	max := req.MaxResults
	if max <= 0 || max > a.maxCap {
		max = a.maxCap
	}
	jtCode := firstTypeMatch(req.JobTypes, indeedTypeCodes)

	var jobs []models.JobPosting
	for start := 0; len(jobs) < max; start += indeedPageSize {
		params := url.Values{
			"q":      {req.Query},
			"l":      {req.Location},
			"radius": {strconv.Itoa(req.RadiusMiles)},
			"start":  {strconv.Itoa(start)},
			"sort":   {"date"},
		}
		if jtCode != "" {
			params.Set("jt", jtCode)
		}

		html, err := a.client.Get(ctx, indeedBaseURL, params)
		if err != nil {
			a.logger.Warn("indeed page fetch failed", map[string]interface{}{
				"start": start, "error": err.Error(),
			})
			break
		}

		pageJobs := a.parsePage(html)
		if len(pageJobs) == 0 {
			break
		}
		jobs = append(jobs, pageJobs...)

		if len(pageJobs) < indeedPageSize {
			break
		}
	}

	return capResults(stamp(a.Name(), utils.FilterValidPostings(jobs)), max), nil
}

func (a *Indeed) parsePage(html string) []models.JobPosting {
	page := extract.NewPage(indeedBaseURL, html)
	if page == nil {
		return nil
	}

	var jobs []models.JobPosting
	page.Doc.Find("div,td").Each(func(_ int, card *goquery.Selection) {
		class, _ := card.Attr("class")
		if !indeedCardRe.MatchString(class) {
			return
		}
		if job, ok := a.parseCard(card); ok {
			jobs = append(jobs, job)
		}
	})
	return jobs
}

func (a *Indeed) parseCard(card *goquery.Selection) (models.JobPosting, bool) {
	titleElem := findClass(card, "h2,a,span", indeedTitleRe)
	if titleElem == nil {
		return models.JobPosting{}, false
	}
	title := utils.CleanText(titleElem.Text())
	if title == "" {
		return models.JobPosting{}, false
	}

	jobURL := ""
	if href, ok := card.Find("a[href]").First().Attr("href"); ok {
		if len(href) > 0 && href[0] == '/' {
			jobURL = indeedOrigin + href
		} else {
			jobURL = href
		}
	}

	sourceID := ""
	if m := indeedJobKeyRe.FindStringSubmatch(jobURL); m != nil {
		sourceID = m[1]
	} else {
		sourceID = utils.GenerateSourceID(title, jobURL)
	}

	company := utils.CleanText(card.Find(`span[data-testid="company-name"]`).Text())
	if company == "" {
		company = utils.CleanText(textByClass(card, "span", indeedCompanyRe))
	}
	if company == "" {
		company = "Unknown"
	}

	location := utils.CleanText(card.Find(`div[data-testid="text-location"]`).Text())
	if location == "" {
		location = utils.CleanText(textByClass(card, "div", indeedLocationRe))
	}

	salaryText := utils.CleanText(card.Find(`div[data-testid="attribute_snippet_testid"]`).Text())
	if salaryText == "" {
		salaryText = utils.CleanText(textByClass(card, "span", indeedSalaryRe))
	}

	jobType := ""
	card.Find("div").Each(func(_ int, meta *goquery.Selection) {
		if jobType != "" {
			return
		}
		class, _ := meta.Attr("class")
		if indeedMetaRe.MatchString(class) {
			jobType = extract.KeywordJobType(meta.Text())
		}
	})

	description := ""
	if elem := findClass(card, "div", indeedSnippetRe); elem != nil {
		description = extract.Truncate(utils.CleanText(elem.Text()), extract.DescriptionLimit)
	}

	job := models.JobPosting{
		SourceID:    sourceID,
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		JobType:     jobType,
		URL:         jobURL,
		PostedDate:  extract.ParseRelativeDate(textByClass(card, "span", indeedDateRe)),
	}
	extract.ApplySalary(&job, salaryText)
	return job, true
}
