package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/pkg/models"
)

func TestExtractTables(t *testing.T) {
	p := pageFromHTML(t, `<html><body><table>
	<tr><th>Position</th><th>Department</th><th>Location</th><th>Type</th></tr>
	<tr>
		<td><a href="/postings/7">Library Assistant</a></td>
		<td>University Library</td>
		<td>Main Campus</td>
		<td>Work-Study</td>
	</tr>
	<tr>
		<td>Grounds Crew</td>
		<td></td>
		<td>North Campus</td>
		<td>Part-Time</td>
	</tr>
	</table></body></html>`)
	p.Org = "Example University"

	jobs := ExtractTables(p)
	require.Len(t, jobs, 2)

	first := jobs[0]
	assert.Equal(t, "Library Assistant", first.Title)
	assert.Equal(t, "University Library", first.Company)
	assert.Equal(t, "Main Campus", first.Location)
	assert.Equal(t, models.JobTypeWorkStudy, first.JobType)
	assert.Equal(t, "https://careers.example.edu/postings/7", first.URL)

	second := jobs[1]
	assert.Equal(t, "Grounds Crew", second.Title)
	// Empty company cell falls back to the page's organization.
	assert.Equal(t, "Example University", second.Company)
	assert.Equal(t, models.JobTypePartTime, second.JobType)
	assert.Equal(t, p.URL, second.URL)
}

func TestExtractTablesIgnoresNonJobTables(t *testing.T) {
	p := pageFromHTML(t, `<html><body><table>
	<tr><th>Date</th><th>Event</th></tr>
	<tr><td>May 1</td><td>Commencement</td></tr>
	</table></body></html>`)

	assert.Empty(t, ExtractTables(p))
}

func TestExtractTablesSkipsSparseRows(t *testing.T) {
	p := pageFromHTML(t, `<html><body><table>
	<tr><th>Job</th><th>Employer</th></tr>
	<tr><td colspan="2">No openings at this time.</td></tr>
	<tr><td>Office Aide</td><td>Registrar</td></tr>
	</table></body></html>`)

	jobs := ExtractTables(p)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Office Aide", jobs[0].Title)
	assert.Equal(t, "Registrar", jobs[0].Company)
}

func TestExtractTablesNilPage(t *testing.T) {
	assert.Nil(t, ExtractTables(nil))
}
