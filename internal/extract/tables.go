package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// Header keywords marking a table as a job listing table.
var tableHeaderKeywords = []string{"job", "position", "title", "employer", "company"}

// ExtractTables handles sites that render listings as plain HTML tables,
// a layout university career centers favor. A table qualifies when its
// header cells mention a job keyword; each following row then maps
// positionally: column 0 title (with optional embedded link), column 1
// company, column 2 location, column 3 job type. Rows without a usable
// title are skipped.
func ExtractTables(p *Page) []models.JobPosting {
	if p == nil || p.Doc == nil {
		return nil
	}

	var jobs []models.JobPosting
	p.Doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var headerParts []string
		table.Find("th").Each(func(_ int, th *goquery.Selection) {
			headerParts = append(headerParts, strings.ToLower(th.Text()))
		})
		headerText := strings.Join(headerParts, " ")

		matched := false
		for _, kw := range tableHeaderKeywords {
			if strings.Contains(headerText, kw) {
				matched = true
				break
			}
		}
		if !matched {
			return
		}

		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // header row
			}
			cells := row.Find("td,th")
			if cells.Length() < 2 {
				return
			}
			if job, ok := parseTableRow(p, cells); ok {
				jobs = append(jobs, job)
			}
		})
	})

	return jobs
}

func parseTableRow(p *Page, cells *goquery.Selection) (models.JobPosting, bool) {
	title := utils.CleanText(cells.Eq(0).Text())
	if len(title) < 3 {
		return models.JobPosting{}, false
	}

	jobURL := ""
	if href, ok := cells.Eq(0).Find("a[href]").First().Attr("href"); ok {
		jobURL = p.ResolveURL(href)
	}
	if jobURL == "" {
		jobURL = p.URL
	}

	company := utils.CleanText(cells.Eq(1).Text())
	if company == "" {
		company = p.Org
	}

	location := ""
	if cells.Length() > 2 {
		location = utils.CleanText(cells.Eq(2).Text())
	}

	jobType := ""
	if cells.Length() > 3 {
		jobType = KeywordJobType(cells.Eq(3).Text())
	}

	return models.JobPosting{
		SourceID: utils.GenerateSourceID(title, company),
		Title:    title,
		Company:  company,
		Location: location,
		JobType:  jobType,
		URL:      jobURL,
	}, true
}
