package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/pkg/models"
)

func TestExtractHTMLPatternsDivContainers(t *testing.T) {
	p := pageFromHTML(t, `<html><body>
	<div class="job-card">
		<h3 class="job-title"><a href="/jobs/1">Lab Technician</a></h3>
		<span class="company-name">Biology Department</span>
		<span class="job-location">Building 12</span>
		<div class="job-description">Prepare samples and maintain equipment.</div>
		<span class="employment-type">Part-time, flexible hours</span>
	</div>
	<div class="job-card">
		<h3 class="job-title"><a href="/jobs/2">IT Help Desk</a></h3>
		<span class="company-name">Campus IT</span>
	</div>
	<div class="sidebar">unrelated</div>
	</body></html>`)

	jobs := ExtractHTMLPatterns(p)
	require.Len(t, jobs, 2)

	job := jobs[0]
	assert.Equal(t, "Lab Technician", job.Title)
	assert.Equal(t, "Biology Department", job.Company)
	assert.Equal(t, "Building 12", job.Location)
	assert.Equal(t, "Prepare samples and maintain equipment.", job.Description)
	assert.Equal(t, models.JobTypePartTime, job.JobType)
	assert.Equal(t, "https://careers.example.edu/jobs/1", job.URL)
	assert.Len(t, job.SourceID, 16)
}

func TestExtractHTMLPatternsStopsAtFirstMatchingTag(t *testing.T) {
	// div containers match first; the li entry duplicating the same
	// posting must not be re-extracted.
	p := pageFromHTML(t, `<html><body>
	<div class="job-listing"><h3>Writing Tutor</h3></div>
	<ul><li class="job-listing"><a href="/jobs/9">Writing Tutor</a></li></ul>
	</body></html>`)

	jobs := ExtractHTMLPatterns(p)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Writing Tutor", jobs[0].Title)
}

func TestExtractHTMLPatternsFallsThroughToListItems(t *testing.T) {
	p := pageFromHTML(t, `<html><body>
	<ul>
		<li class="position-row"><a href="/p/44">Event Staff</a></li>
	</ul>
	</body></html>`)
	p.Org = "Example University"

	jobs := ExtractHTMLPatterns(p)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Event Staff", jobs[0].Title)
	assert.Equal(t, "Example University", jobs[0].Company)
	assert.Equal(t, "https://careers.example.edu/p/44", jobs[0].URL)
}

func TestExtractHTMLPatternsSkipsShortTitles(t *testing.T) {
	p := pageFromHTML(t, `<html><body>
	<div class="job-card"><h3>Go</h3></div>
	</body></html>`)

	assert.Empty(t, ExtractHTMLPatterns(p))
}

func TestExtractHTMLPatternsNoContainers(t *testing.T) {
	p := pageFromHTML(t, `<html><body><p>Welcome to our site.</p></body></html>`)
	assert.Empty(t, ExtractHTMLPatterns(p))
	assert.Nil(t, ExtractHTMLPatterns(nil))
}
