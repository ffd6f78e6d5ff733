package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// Container patterns tried in priority order. Scanning stops at the first
// tag whose matches yield at least one posting; on pages with nested
// matching containers, continuing would mostly re-extract duplicates.
var containerPatterns = []struct {
	tag   string
	class *regexp.Regexp
}{
	{"div", regexp.MustCompile(`(?i)job|posting|listing|position|opportunity`)},
	{"article", regexp.MustCompile(`(?i)job|posting|listing`)},
	{"li", regexp.MustCompile(`(?i)job|posting|listing|position`)},
	{"tr", regexp.MustCompile(`(?i)job|posting|listing`)},
}

var (
	titleClassRe    = regexp.MustCompile(`(?i)title|name|position`)
	companyClassRe  = regexp.MustCompile(`(?i)company|employer|department|org`)
	locationClassRe = regexp.MustCompile(`(?i)location|city|campus`)
	descClassRe     = regexp.MustCompile(`(?i)description|summary|details`)
	typeClassRe     = regexp.MustCompile(`(?i)type|category|employment`)
)

// ExtractHTMLPatterns is the fallback for pages carrying neither embedded
// JSON nor JSON-LD. It scans for elements whose class attribute matches a
// small job vocabulary, then pulls fields out of each container by a
// prioritized selector chain.
func ExtractHTMLPatterns(p *Page) []models.JobPosting {
	if p == nil || p.Doc == nil {
		return nil
	}

	for _, pattern := range containerPatterns {
		var jobs []models.JobPosting
		p.Doc.Find(pattern.tag).Each(func(_ int, s *goquery.Selection) {
			class, _ := s.Attr("class")
			if !pattern.class.MatchString(class) {
				return
			}
			if job, ok := parseHTMLContainer(p, s); ok {
				jobs = append(jobs, job)
			}
		})
		if len(jobs) > 0 {
			return jobs
		}
	}

	return nil
}

func parseHTMLContainer(p *Page, s *goquery.Selection) (models.JobPosting, bool) {
	titleElem := findByClass(s, "h1,h2,h3,h4,a", titleClassRe)
	if titleElem == nil {
		titleElem = firstSelection(s.Find("h1,h2,h3,h4"))
	}
	if titleElem == nil {
		titleElem = firstSelection(s.Find("a[href]"))
	}
	if titleElem == nil {
		return models.JobPosting{}, false
	}

	title := utils.CleanText(titleElem.Text())
	if len(title) < 3 {
		return models.JobPosting{}, false
	}

	jobURL := ""
	link := titleElem
	if !link.Is("a") {
		link = firstSelection(s.Find("a[href]"))
	}
	if link != nil {
		if href, ok := link.Attr("href"); ok {
			jobURL = p.ResolveURL(href)
		}
	}
	if jobURL == "" {
		jobURL = p.URL
	}

	company := p.Org
	if elem := findByClass(s, "span,div,td", companyClassRe); elem != nil {
		company = utils.CleanText(elem.Text())
	}

	location := ""
	if elem := findByClass(s, "span,div,td", locationClassRe); elem != nil {
		location = utils.CleanText(elem.Text())
	}

	description := ""
	if elem := findByClass(s, "p,div", descClassRe); elem != nil {
		description = Truncate(utils.CleanText(elem.Text()), DescriptionLimit)
	}

	jobType := ""
	if elem := findByClass(s, "span,div,td", typeClassRe); elem != nil {
		jobType = KeywordJobType(elem.Text())
	}

	return models.JobPosting{
		SourceID:    utils.GenerateSourceID(title, company, jobURL),
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		JobType:     jobType,
		URL:         jobURL,
	}, true
}

// findByClass returns the first element under s matching the selector
// whose class attribute matches the pattern, or nil.
func findByClass(s *goquery.Selection, selector string, pattern *regexp.Regexp) *goquery.Selection {
	var found *goquery.Selection
	s.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		class, _ := el.Attr("class")
		if pattern.MatchString(class) {
			found = el
			return false
		}
		return true
	})
	return found
}

func firstSelection(s *goquery.Selection) *goquery.Selection {
	if s.Length() == 0 {
		return nil
	}
	return s.First()
}
