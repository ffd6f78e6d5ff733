package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/pkg/models"
)

func pageFromHTML(t *testing.T, html string) *Page {
	t.Helper()
	p := NewPage("https://careers.example.edu/jobs", html)
	require.NotNil(t, p)
	return p
}

func TestExtractJSONLDSingleJobPosting(t *testing.T) {
	p := pageFromHTML(t, `<html><head><script type="application/ld+json">
	{
		"@type": "JobPosting",
		"title": "Research Assistant",
		"hiringOrganization": {"name": "Example University"},
		"jobLocation": {"address": {"addressLocality": "Boston", "addressRegion": "MA"}},
		"employmentType": "PART_TIME",
		"datePosted": "2025-04-02",
		"baseSalary": {"unitText": "HOUR", "value": {"minValue": 16, "maxValue": 19}},
		"url": "https://careers.example.edu/jobs/123",
		"identifier": {"value": "RA-123"},
		"description": "<p>Assist with <b>lab</b> work.</p>"
	}
	</script></head></html>`)

	jobs := ExtractJSONLD(p)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "Research Assistant", job.Title)
	assert.Equal(t, "Example University", job.Company)
	assert.Equal(t, "Boston, MA", job.Location)
	assert.Equal(t, models.JobTypePartTime, job.JobType)
	assert.Equal(t, "https://careers.example.edu/jobs/123", job.URL)
	assert.Equal(t, "RA-123", job.SourceID)
	assert.Equal(t, "Assist with lab work.", job.Description)
	require.NotNil(t, job.SalaryMin)
	require.NotNil(t, job.SalaryMax)
	assert.Equal(t, 16.0, *job.SalaryMin)
	assert.Equal(t, 19.0, *job.SalaryMax)
	assert.Equal(t, models.SalaryHourly, job.SalaryType)
	require.NotNil(t, job.PostedDate)
	assert.Equal(t, 2025, job.PostedDate.Year())
}

func TestExtractJSONLDItemList(t *testing.T) {
	p := pageFromHTML(t, `<html><body><script type="application/ld+json">
	{
		"@type": "ItemList",
		"itemListElement": [
			{"item": {"@type": "JobPosting", "title": "Tutor", "hiringOrganization": "Learning Center"}},
			{"item": {"@type": "JobPosting", "title": "Grader", "hiringOrganization": "Math Dept"}}
		]
	}
	</script></body></html>`)

	jobs := ExtractJSONLD(p)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Tutor", jobs[0].Title)
	assert.Equal(t, "Learning Center", jobs[0].Company)
	assert.Equal(t, "Grader", jobs[1].Title)
}

func TestExtractJSONLDArray(t *testing.T) {
	p := pageFromHTML(t, `<html><body><script type="application/ld+json">
	[
		{"@type": "JobPosting", "title": "Barista"},
		{"@type": "Organization", "name": "not a job"},
		{"@type": "JobPosting", "title": "Cashier"}
	]
	</script></body></html>`)

	jobs := ExtractJSONLD(p)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Barista", jobs[0].Title)
	assert.Equal(t, "Cashier", jobs[1].Title)
}

func TestExtractJSONLDLocationDropsEmptyParts(t *testing.T) {
	p := pageFromHTML(t, `<html><body><script type="application/ld+json">
	{"@type": "JobPosting", "title": "Clerk",
	 "jobLocation": [{"address": {"addressLocality": "Austin"}}]}
	</script></body></html>`)

	jobs := ExtractJSONLD(p)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Austin", jobs[0].Location)
}

func TestExtractJSONLDMalformedScriptIgnored(t *testing.T) {
	p := pageFromHTML(t, `<html><body>
	<script type="application/ld+json">{not valid json</script>
	<script type="application/ld+json">{"@type": "JobPosting", "title": "Aide"}</script>
	</body></html>`)

	jobs := ExtractJSONLD(p)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Aide", jobs[0].Title)
}

func TestExtractJSONLDFallbacks(t *testing.T) {
	p := pageFromHTML(t, `<html><body><script type="application/ld+json">
	{"@type": "JobPosting", "title": "Library Page"}
	</script></body></html>`)
	p.Org = "Example University"

	jobs := ExtractJSONLD(p)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Example University", jobs[0].Company)
	assert.Equal(t, p.URL, jobs[0].URL)
	assert.Len(t, jobs[0].SourceID, 16)
}

func TestExtractJSONLDNilPage(t *testing.T) {
	assert.Nil(t, ExtractJSONLD(nil))
}
