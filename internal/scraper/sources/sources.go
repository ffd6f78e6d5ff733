// Package sources contains one adapter per job board. Each adapter owns
// its base URL, query-string conventions, politeness delay and pagination
// policy, and composes the shared extraction strategies with its own
// selector chains where the board's markup is known.
package sources

import (
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobscout/pkg/models"
)

// stamp fills the adapter-owned fields every emitted posting carries.
func stamp(source string, jobs []models.JobPosting) []models.JobPosting {
	now := time.Now().UTC()
	for i := range jobs {
		jobs[i].Source = source
		jobs[i].ScrapedAt = now
	}
	return jobs
}

// capResults bounds a result list to max entries. A non-positive max
// means no bound.
func capResults(jobs []models.JobPosting, max int) []models.JobPosting {
	if max > 0 && len(jobs) > max {
		return jobs[:max]
	}
	return jobs
}

// findClass returns the first element under s matching the selector whose
// class attribute matches the pattern, or nil.
func findClass(s *goquery.Selection, selector string, pattern *regexp.Regexp) *goquery.Selection {
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

// textByClass is findClass reduced to the element's text, "" when absent.
func textByClass(s *goquery.Selection, selector string, pattern *regexp.Regexp) string {
	if el := findClass(s, selector, pattern); el != nil {
		return el.Text()
	}
	return ""
}

// firstTypeMatch maps the first requested job type present in codes onto
// that source's code, for boards that accept a single type filter.
func firstTypeMatch(requested []string, codes map[string]string) string {
	for _, jt := range requested {
		if code, ok := codes[jt]; ok {
			return code
		}
	}
	return ""
}

// filterByType drops postings whose job type is known and not among the
// requested types. Postings with no detected type are kept: most boards
// omit the type from list markup, and dropping them would discard real
// results.
func filterByType(jobs []models.JobPosting, req *models.SearchRequest) []models.JobPosting {
	if len(req.JobTypes) == 0 {
		return jobs
	}
	kept := jobs[:0]
	for _, job := range jobs {
		if req.WantsType(job.JobType) {
			kept = append(kept, job)
		}
	}
	return kept
}
