package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/pkg/models"
)

func TestExtractEmbeddedJSONNextData(t *testing.T) {
	p := pageFromHTML(t, `<html><body><script id="__NEXT_DATA__" type="application/json">
	{
		"props": {
			"pageProps": {
				"jobs": [
					{"id": "j1", "title": "Campus Ambassador", "company": "BrandCo",
					 "location": "Chicago, IL", "url": "/job/j1", "jobType": "Part-time"},
					{"id": "j2", "title": "Data Intern", "employer": {"name": "Insight Labs"},
					 "apply_url": "https://insight.example.com/apply/j2"}
				]
			}
		}
	}
	</script></body></html>`)

	jobs := ExtractEmbeddedJSON(p)
	require.Len(t, jobs, 2)

	assert.Equal(t, "j1", jobs[0].SourceID)
	assert.Equal(t, "Campus Ambassador", jobs[0].Title)
	assert.Equal(t, "BrandCo", jobs[0].Company)
	assert.Equal(t, "https://careers.example.edu/job/j1", jobs[0].URL)
	assert.Equal(t, models.JobTypePartTime, jobs[0].JobType)

	assert.Equal(t, "Data Intern", jobs[1].Title)
	assert.Equal(t, "Insight Labs", jobs[1].Company)
	assert.Equal(t, "https://insight.example.com/apply/j2", jobs[1].URL)
}

func TestExtractEmbeddedJSONStructuredLocation(t *testing.T) {
	p := pageFromHTML(t, `<html><body><script id="__INITIAL_STATE__">
	{"results": [{"title": "Office Aide", "company": "Registrar",
	 "location": {"city": "Ithaca", "state": "NY"}}]}
	</script></body></html>`)

	jobs := ExtractEmbeddedJSON(p)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Ithaca, NY", jobs[0].Location)
	// No explicit ID, so a deterministic hash is assigned.
	assert.Len(t, jobs[0].SourceID, 16)
}

func TestExtractEmbeddedJSONMalformedBlob(t *testing.T) {
	p := pageFromHTML(t, `<html><body>
	<script id="__NEXT_DATA__">{"props": {"jobs": [{"title": </script>
	</body></html>`)

	assert.Empty(t, ExtractEmbeddedJSON(p))
}

func TestExtractEmbeddedJSONDepthBound(t *testing.T) {
	// The job sits below the depth bound and must not be found.
	p := pageFromHTML(t, `<html><body><script id="__NUXT__">
	{"data": {"state": {"props": {"pageProps": {"results": {"items":
	 {"jobs": [{"title": "Too Deep", "company": "Nope"}]}}}}}}
	</script></body></html>`)

	assert.Empty(t, ExtractEmbeddedJSON(p))
}

func TestExtractEmbeddedJSONNilPage(t *testing.T) {
	assert.Nil(t, ExtractEmbeddedJSON(nil))
}
