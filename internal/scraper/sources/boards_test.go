package sources

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/pkg/models"
)

func TestIndeedParsePage(t *testing.T) {
	cfg := fastConfig(t)
	adapter := NewIndeed(cfg)

	jobs := adapter.parsePage(`<html><body>
	<div class="job_seen_beacon">
		<h2 class="jobTitle"><span>Barista</span></h2>
		<a href="/viewjob?jk=abc123def456"></a>
		<span data-testid="company-name">Starbucks</span>
		<div data-testid="text-location">Seattle, WA</div>
		<div data-testid="attribute_snippet_testid">$18 - $22 an hour</div>
		<div class="metadata">Part-time</div>
		<div class="job-snippet">Craft espresso drinks and serve customers.</div>
		<span class="date">Posted 3 days ago</span>
	</div>
	</body></html>`)

	require.Len(t, jobs, 1)
	job := jobs[0]
	assert.Equal(t, "Barista", job.Title)
	assert.Equal(t, "abc123def456", job.SourceID)
	assert.Equal(t, "Starbucks", job.Company)
	assert.Equal(t, "Seattle, WA", job.Location)
	assert.Equal(t, "https://www.indeed.com/viewjob?jk=abc123def456", job.URL)
	assert.Equal(t, models.JobTypePartTime, job.JobType)
	assert.Equal(t, "Craft espresso drinks and serve customers.", job.Description)

	require.NotNil(t, job.SalaryMin)
	require.NotNil(t, job.SalaryMax)
	assert.Equal(t, 18.0, *job.SalaryMin)
	assert.Equal(t, 22.0, *job.SalaryMax)
	assert.Equal(t, models.SalaryHourly, job.SalaryType)

	require.NotNil(t, job.PostedDate)
	wantDate := time.Now().UTC().AddDate(0, 0, -3)
	assert.Equal(t, wantDate.Year(), job.PostedDate.Year())
}

func TestIndeedParsePageNoCards(t *testing.T) {
	adapter := NewIndeed(fastConfig(t))
	assert.Empty(t, adapter.parsePage(`<html><body><p>No results found.</p></body></html>`))
}

func TestIndeedTypeCodeFirstMatch(t *testing.T) {
	got := firstTypeMatch([]string{models.JobTypeOnCampus, models.JobTypePartTime, models.JobTypeFullTime}, indeedTypeCodes)
	assert.Equal(t, "parttime", got)

	assert.Empty(t, firstTypeMatch([]string{models.JobTypeOnCampus}, indeedTypeCodes))
	assert.Empty(t, firstTypeMatch(nil, indeedTypeCodes))
}

func TestLinkedInParsePage(t *testing.T) {
	adapter := NewLinkedIn(fastConfig(t))

	jobs := adapter.parsePage(`<html><body>
	<div class="base-card job-search-card">
		<h3 class="base-search-card__title">Data Intern</h3>
		<a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/3940271865"></a>
		<h4 class="base-search-card__subtitle">Insight Labs</h4>
		<span class="job-search-card__location">Boston, MA</span>
		<time class="job-search-card__listdate" datetime="2025-06-01">3 weeks ago</time>
	</div>
	</body></html>`)

	require.Len(t, jobs, 1)
	job := jobs[0]
	assert.Equal(t, "Data Intern", job.Title)
	assert.Equal(t, "3940271865", job.SourceID)
	assert.Equal(t, "Insight Labs", job.Company)
	assert.Equal(t, "Boston, MA", job.Location)
	require.NotNil(t, job.PostedDate)
	assert.Equal(t, 2025, job.PostedDate.Year())
	assert.Equal(t, time.June, job.PostedDate.Month())
}

func TestLinkedInDistanceBuckets(t *testing.T) {
	tests := []struct{ radius, want int }{
		{0, 5}, {5, 5}, {8, 10}, {20, 25}, {40, 50}, {75, 100}, {500, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, linkedinDistance(tt.radius), "radius %d", tt.radius)
	}
}

func TestGlassdoorParsePageCards(t *testing.T) {
	adapter := NewGlassdoor(fastConfig(t))

	jobs := adapter.parsePage(`<html><body><ul>
	<li class="JobsList_jobListItem" data-id="1009876543">
		<a class="JobCard_jobTitle" href="/job-listing/barista-starbucks?jobListingId=1009876543">Barista</a>
		<span class="JobCard_companyName">Starbucks</span>
		<span class="JobCard_location">Seattle, WA</span>
		<span class="JobCard_salaryEstimate">$35k - $45k</span>
		<span class="JobCard_listingAge">2d</span>
	</li>
	</ul></body></html>`)

	require.Len(t, jobs, 1)
	job := jobs[0]
	assert.Equal(t, "1009876543", job.SourceID)
	assert.Equal(t, "Barista", job.Title)
	assert.Equal(t, "Starbucks", job.Company)
	assert.Equal(t, "https://www.glassdoor.com/job-listing/barista-starbucks?jobListingId=1009876543", job.URL)
	require.NotNil(t, job.SalaryMin)
	assert.Equal(t, 35000.0, *job.SalaryMin)
	assert.Equal(t, 45000.0, *job.SalaryMax)
	assert.Equal(t, models.SalaryYearly, job.SalaryType)
}

func TestGlassdoorParsePageJSONLDFallback(t *testing.T) {
	adapter := NewGlassdoor(fastConfig(t))

	jobs := adapter.parsePage(`<html><body>
	<script type="application/ld+json">
	{"@type": "JobPosting", "title": "Shift Supervisor",
	 "hiringOrganization": {"name": "Starbucks"},
	 "jobLocation": {"address": {"addressLocality": "Portland", "addressRegion": "OR"}}}
	</script>
	</body></html>`)

	require.Len(t, jobs, 1)
	assert.Equal(t, "Shift Supervisor", jobs[0].Title)
	assert.Equal(t, "Portland, OR", jobs[0].Location)
}

func TestWayUpTypeParam(t *testing.T) {
	assert.Equal(t, "internship", wayupTypeParam([]string{models.JobTypeInternship, models.JobTypeFullTime}))
	assert.Equal(t, "part-time", wayupTypeParam([]string{models.JobTypePartTime}))
	assert.Empty(t, wayupTypeParam([]string{models.JobTypeTemporary}))
	assert.Empty(t, wayupTypeParam(nil))
}

func TestWayUpParsePageMergesAndDedups(t *testing.T) {
	adapter := NewWayUp(fastConfig(t))

	jobs := adapter.parsePage(`<html><body>
	<div class="job-card"><h3 class="job-title"><a href="/job/55">Campus Ambassador</a></h3></div>
	<script type="application/ld+json">
	{"@type": "JobPosting", "title": "Campus Ambassador", "hiringOrganization": "BrandCo"}
	</script>
	<script id="__NEXT_DATA__">
	{"props": {"pageProps": {"jobs": [{"title": "Data Intern", "company": "Insight Labs"}]}}}
	</script>
	</body></html>`)

	require.Len(t, jobs, 2)
	assert.Equal(t, "Campus Ambassador", jobs[0].Title)
	assert.Equal(t, "Data Intern", jobs[1].Title)
}

func TestCollegeRecruiterAssignIDs(t *testing.T) {
	adapter := NewCollegeRecruiter(fastConfig(t))

	jobs := adapter.assignIDs([]models.JobPosting{
		{SourceID: "hash000000000001", URL: "https://www.collegerecruiter.com/job/98765-office-aide"},
		{SourceID: "hash000000000002", URL: "https://www.collegerecruiter.com/about"},
	})

	assert.Equal(t, "98765", jobs[0].SourceID)
	assert.Equal(t, "hash000000000002", jobs[1].SourceID)
}

func TestFilterByType(t *testing.T) {
	sample := func() []models.JobPosting {
		return []models.JobPosting{
			{Title: "A", JobType: models.JobTypeFullTime},
			{Title: "B", JobType: models.JobTypePartTime},
			{Title: "C"}, // unknown type is kept
		}
	}

	got := filterByType(sample(), &models.SearchRequest{JobTypes: []string{models.JobTypePartTime}})
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Title)
	assert.Equal(t, "C", got[1].Title)

	assert.Len(t, filterByType(sample(), &models.SearchRequest{}), 3)
}
