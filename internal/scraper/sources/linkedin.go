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
	linkedinBaseURL  = "https://www.linkedin.com/jobs/search"
	linkedinOrigin   = "https://www.linkedin.com"
	linkedinPageSize = 25
)

// LinkedIn job type codes for the f_JT parameter. Multiple codes are
// joined with commas.
var linkedinTypeCodes = map[string]string{
	models.JobTypeFullTime:   "F",
	models.JobTypePartTime:   "P",
	models.JobTypeInternship: "I",
	models.JobTypeContract:   "C",
	models.JobTypeTemporary:  "T",
}

var (
	linkedinCardRe     = regexp.MustCompile(`(?i)base-card|job-search-card`)
	linkedinTitleRe    = regexp.MustCompile(`(?i)base-search-card__title|job-title|job-card-list__title`)
	linkedinLinkRe     = regexp.MustCompile(`(?i)base-card__full-link|job-card-container__link`)
	linkedinCompanyRe  = regexp.MustCompile(`(?i)base-search-card__subtitle|job-card-container__company-name`)
	linkedinLocationRe = regexp.MustCompile(`(?i)job-search-card__location|job-card-container__metadata-item`)
	linkedinMetaRe     = regexp.MustCompile(`(?i)job-card-container__metadata-item`)
	linkedinJobIDRe    = regexp.MustCompile(`jobs/view/(\d+)`)
)

// LinkedIn scrapes the public LinkedIn jobs search (no login required).
type LinkedIn struct {
	client *fetch.Client
	logger logging.Logger
	maxCap int
}

// NewLinkedIn creates the LinkedIn adapter. The board is stricter about
// scraping, so it runs with a longer politeness delay.
func NewLinkedIn(cfg *config.Config) *LinkedIn {
	return &LinkedIn{
		client: fetch.NewClient(fetch.Options{
			Delay:      cfg.Scraper.Delays.LinkedIn,
			Timeout:    cfg.Scraper.RequestTimeout,
			MaxRetries: cfg.Scraper.MaxRetries,
			UserAgent:  cfg.Scraper.UserAgent,
		}),
		logger: logging.GetGlobalLogger(),
		maxCap: cfg.Search.MaxResultsPerSource,
	}
}

func (a *LinkedIn) Name() string { return "linkedin" }

// linkedinDistance buckets an arbitrary mile radius into the discrete
// values the board accepts.
func linkedinDistance(radius int) int {
	switch {
	case radius <= 5:
		return 5
	case radius <= 10:
		return 10
	case radius <= 25:
		return 25
	case radius <= 50:
		return 50
	default:
		return 100
	}
}

func (a *LinkedIn) Search(ctx context.Context, req *models.SearchRequest) ([]models.JobPosting, error) {
	max := req.MaxResults
	if max <= 0 || max > a.maxCap {
		max = a.maxCap
	}

	var jtCodes []string
	for _, jt := range req.JobTypes {
		if code, ok := linkedinTypeCodes[jt]; ok {
			jtCodes = append(jtCodes, code)
		}
	}

	var jobs []models.JobPosting
	for start := 0; len(jobs) < max; start += linkedinPageSize {
		params := url.Values{
			"keywords": {req.Query},
			"location": {req.Location},
			"distance": {strconv.Itoa(linkedinDistance(req.RadiusMiles))},
			"start":    {strconv.Itoa(start)},
			"sortBy":   {"DD"},
			// Entry level and associate, the student-relevant bands.
			"f_E": {"1,2"},
		}
		if len(jtCodes) > 0 {
			params.Set("f_JT", strings.Join(jtCodes, ","))
		}

		html, err := a.client.Get(ctx, linkedinBaseURL, params)
		if err != nil {
			a.logger.Warn("linkedin page fetch failed", map[string]interface{}{
				"start": start, "error": err.Error(),
			})
			break
		}

		pageJobs := a.parsePage(html)
		if len(pageJobs) == 0 {
			break
		}
		jobs = append(jobs, pageJobs...)

		if len(pageJobs) < linkedinPageSize {
			break
		}
	}

	return capResults(stamp(a.Name(), utils.FilterValidPostings(jobs)), max), nil
}

func (a *LinkedIn) parsePage(html string) []models.JobPosting {
	page := extract.NewPage(linkedinBaseURL, html)
	if page == nil {
		return nil
	}

	var cards []*goquery.Selection
	page.Doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if linkedinCardRe.MatchString(class) {
			cards = append(cards, s)
		}
	})
	if len(cards) == 0 {
		page.Doc.Find("ul.jobs-search__results-list li").Each(func(_ int, s *goquery.Selection) {
			cards = append(cards, s)
		})
	}

	var jobs []models.JobPosting
	for _, card := range cards {
		if job, ok := a.parseCard(card); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

func (a *LinkedIn) parseCard(card *goquery.Selection) (models.JobPosting, bool) {
	titleElem := findClass(card, "h3,a", linkedinTitleRe)
	if titleElem == nil {
		titleElem = findClass(card, "span", regexp.MustCompile(`(?i)sr-only`))
	}
	if titleElem == nil {
		return models.JobPosting{}, false
	}
	title := utils.CleanText(titleElem.Text())
	if title == "" {
		return models.JobPosting{}, false
	}

	link := findClass(card, "a", linkedinLinkRe)
	if link == nil {
		link = card.Find("a[href]").First()
	}
	jobURL, _ := link.Attr("href")
	if strings.HasPrefix(jobURL, "/") {
		jobURL = linkedinOrigin + jobURL
	}

	sourceID := ""
	if m := linkedinJobIDRe.FindStringSubmatch(jobURL); m != nil {
		sourceID = m[1]
	} else {
		sourceID = utils.GenerateSourceID(title, jobURL)
	}

	company := utils.CleanText(textByClass(card, "h4,a", linkedinCompanyRe))
	if company == "" {
		company = "Unknown"
	}

	location := utils.CleanText(textByClass(card, "span", linkedinLocationRe))

	// Posted date: the card carries a <time> element with a machine
	// datetime attribute when available, relative text otherwise.
	job := models.JobPosting{
		SourceID: sourceID,
		Title:    title,
		Company:  company,
		Location: location,
		URL:      jobURL,
	}
	if timeElem := card.Find("time").First(); timeElem.Length() > 0 {
		if dt, ok := timeElem.Attr("datetime"); ok {
			job.PostedDate = extract.ParseISODate(dt)
		}
		if job.PostedDate == nil {
			job.PostedDate = extract.ParseRelativeDate(timeElem.Text())
		}
	}

	// Job type and salary surface only as loose metadata spans.
	card.Find("span").Each(func(_ int, meta *goquery.Selection) {
		class, _ := meta.Attr("class")
		if !linkedinMetaRe.MatchString(class) {
			return
		}
		text := meta.Text()
		if jt := extract.KeywordJobType(text); jt != "" && job.JobType == "" {
			job.JobType = jt
			return
		}
		lower := strings.ToLower(text)
		if job.SalaryText == "" && (strings.Contains(lower, "$") || strings.Contains(lower, "hour") || strings.Contains(lower, "year")) {
			extract.ApplySalary(&job, utils.CleanText(text))
		}
	})

	return job, true
}
