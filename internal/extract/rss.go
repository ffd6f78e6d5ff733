package extract

import (
	"strings"

	"github.com/mmcdole/gofeed"

	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// URL fragments that mark an endpoint as an RSS/Atom feed.
var feedURLHints = []string{".rss", ".xml", "/feed", "/rss", "format=rss", "format=atom"}

// IsFeedURL reports whether a board URL looks like an RSS/Atom feed
// rather than an HTML page.
func IsFeedURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, hint := range feedURLHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// ExtractFeed parses RSS <item> or Atom <entry> elements into postings.
// org names the institution the feed belongs to and becomes the company
// field. A feed with zero parseable items yields zero records, not a
// failure.
func ExtractFeed(feedURL, xml, org string) []models.JobPosting {
	parsed, err := gofeed.NewParser().ParseString(xml)
	if err != nil || parsed == nil {
		return nil
	}

	var jobs []models.JobPosting
	for _, item := range parsed.Items {
		title := utils.CleanText(item.Title)
		if title == "" {
			continue
		}

		link := item.Link
		if link == "" {
			link = feedURL
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}
		if description != "" {
			description = Truncate(utils.CleanText(StripHTML(description)), DescriptionLimit)
		}

		job := models.JobPosting{
			SourceID:    utils.GenerateSourceID(title, link),
			Title:       title,
			Company:     org,
			Description: description,
			URL:         link,
		}

		// gofeed normalizes pubDate, published and updated, covering both
		// RFC 2822 and ISO forms; unparseable dates come back nil.
		if item.PublishedParsed != nil {
			d := item.PublishedParsed.UTC()
			job.PostedDate = &d
		} else if item.UpdatedParsed != nil {
			d := item.UpdatedParsed.UTC()
			job.PostedDate = &d
		}

		jobs = append(jobs, job)
	}

	return jobs
}
