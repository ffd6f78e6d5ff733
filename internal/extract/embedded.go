package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// maxJSONDepth bounds the recursive search through hydration payloads.
// The depth counter is explicit so behavior is identical regardless of
// the runtime's own recursion limits.
const maxJSONDepth = 5

// Script tag identifiers used by the common server-rendering frameworks.
var hydrationScriptIDs = []string{"__NEXT_DATA__", "__NUXT__", "__INITIAL_STATE__"}

// Keys whose values are worth descending into when hunting for listings.
var jobListKeys = []string{
	"jobs", "listings", "results", "items", "data", "initialJobs",
	"pageProps", "props", "state", "searchResults",
}

// ExtractEmbeddedJSON pulls postings out of framework-hydration script
// blobs (Next.js, Nuxt and similar). The JSON object graph is searched to
// a bounded depth for any mapping that looks like a job: a title-like key
// alongside a company/employer-like key. Malformed JSON yields zero
// records, never an error.
func ExtractEmbeddedJSON(p *Page) []models.JobPosting {
	if p == nil || p.Doc == nil {
		return nil
	}

	var jobs []models.JobPosting
	for _, id := range hydrationScriptIDs {
		p.Doc.Find("script#" + id).Each(func(_ int, s *goquery.Selection) {
			raw := s.Text()
			if !gjson.Valid(raw) {
				return
			}
			for _, candidate := range findJobObjects(gjson.Parse(raw), 0) {
				if job, ok := parseEmbeddedJob(p, candidate); ok {
					jobs = append(jobs, job)
				}
			}
		})
	}
	return jobs
}

// findJobObjects walks the parsed JSON for job-shaped mappings, carrying
// an explicit depth counter.
func findJobObjects(r gjson.Result, depth int) []gjson.Result {
	if depth > maxJSONDepth {
		return nil
	}

	var found []gjson.Result

	if r.IsObject() {
		if r.Get("title").Exists() && (r.Get("company").Exists() || r.Get("employer").Exists()) {
			found = append(found, r)
		}
		for _, key := range jobListKeys {
			if child := r.Get(key); child.Exists() {
				found = append(found, findJobObjects(child, depth+1)...)
			}
		}
	} else if r.IsArray() {
		r.ForEach(func(_, item gjson.Result) bool {
			found = append(found, findJobObjects(item, depth+1)...)
			return true
		})
	}

	return found
}

// parseEmbeddedJob maps one job-shaped JSON object into a posting using a
// tolerant field policy: several alias keys per canonical field, and either
// a plain string or a nested object where sources disagree.
func parseEmbeddedJob(p *Page, data gjson.Result) (models.JobPosting, bool) {
	title := firstString(data, "title", "name")
	if title == "" {
		return models.JobPosting{}, false
	}

	company := stringOrName(data, "company", "employer", "company_name", "companyName")
	if company == "" {
		company = "Unknown"
	}

	location := firstString(data, "location", "city")
	if loc := data.Get("location"); loc.IsObject() {
		location = joinLocation(loc.Get("city").String(),
			firstString(loc, "state", "region"))
	}

	jobURL := firstString(data, "url", "apply_url", "applyUrl", "jobUrl")
	jobURL = p.ResolveURL(jobURL)

	description := firstString(data, "description", "summary")

	jobType := ""
	if jt := firstString(data, "job_type", "jobType", "employment_type", "employmentType"); jt != "" {
		jobType = KeywordJobType(jt)
	}

	sourceID := data.Get("id").String()
	if sourceID == "" {
		sourceID = data.Get("jobId").String()
	}
	if sourceID == "" {
		sourceID = utils.GenerateSourceID(title, company, jobURL)
	}

	return models.JobPosting{
		SourceID:    sourceID,
		Title:       utils.CleanText(title),
		Company:     utils.CleanText(company),
		Location:    utils.CleanText(location),
		Description: Truncate(utils.CleanText(description), DescriptionLimit),
		JobType:     jobType,
		URL:         jobURL,
	}, true
}

// firstString returns the first alias key holding a string value.
func firstString(data gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := data.Get(key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// stringOrName accepts either a plain string or an object with a name field.
func stringOrName(data gjson.Result, keys ...string) string {
	for _, key := range keys {
		v := data.Get(key)
		switch {
		case v.Type == gjson.String && v.String() != "":
			return v.String()
		case v.IsObject():
			if name := v.Get("name").String(); name != "" {
				return name
			}
		}
	}
	return ""
}

// joinLocation joins city and region with ", ", dropping empty parts.
func joinLocation(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	out := ""
	for i, p := range nonEmpty {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
