package aggregator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/config"
	"jobscout/internal/scraper"
	"jobscout/pkg/models"
)

type stubAdapter struct {
	name string
	jobs []models.JobPosting
	err  error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Search(_ context.Context, _ *models.SearchRequest) ([]models.JobPosting, error) {
	return s.jobs, s.err
}

type stubFactory struct {
	adapters map[string]scraper.Adapter
	order    []string
}

func (f *stubFactory) CreateAdapter(source string) (scraper.Adapter, error) {
	if a, ok := f.adapters[source]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("unsupported job source: %s", source)
}

func (f *stubFactory) GetSupportedSources() []string { return f.order }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func posting(source, title, company string) models.JobPosting {
	return models.JobPosting{
		Source:   source,
		SourceID: title + "-" + company,
		Title:    title,
		Company:  company,
	}
}

func TestSearchMergesSourcesInOrder(t *testing.T) {
	factory := &stubFactory{
		adapters: map[string]scraper.Adapter{
			"indeed": &stubAdapter{name: "indeed", jobs: []models.JobPosting{
				posting("indeed", "Barista", "Starbucks"),
			}},
			"wayup": &stubAdapter{name: "wayup", jobs: []models.JobPosting{
				posting("wayup", "Tutor", "Learning Center"),
			}},
		},
		order: []string{"indeed", "wayup"},
	}

	agg := New(testConfig(t), factory)
	resp := agg.Search(context.Background(), &models.SearchRequest{Query: "student"})

	require.True(t, resp.Success)
	require.Len(t, resp.Jobs, 2)
	assert.Equal(t, "Barista", resp.Jobs[0].Title)
	assert.Equal(t, "Tutor", resp.Jobs[1].Title)
	assert.Equal(t, 1, resp.SourceCounts["indeed"])
	assert.Equal(t, 1, resp.SourceCounts["wayup"])
	assert.Equal(t, 2, resp.Total)
	assert.Empty(t, resp.Errors)
}

func TestSearchDedupAcrossSourcesKeepsFirst(t *testing.T) {
	factory := &stubFactory{
		adapters: map[string]scraper.Adapter{
			"indeed":   &stubAdapter{name: "indeed", jobs: []models.JobPosting{posting("indeed", "Barista", "Starbucks")}},
			"linkedin": &stubAdapter{name: "linkedin", jobs: []models.JobPosting{posting("linkedin", "BARISTA", "starbucks")}},
		},
		order: []string{"indeed", "linkedin"},
	}

	agg := New(testConfig(t), factory)
	resp := agg.Search(context.Background(), &models.SearchRequest{})

	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "indeed", resp.Jobs[0].Source)
}

func TestSearchIsolatesFailingSource(t *testing.T) {
	factory := &stubFactory{
		adapters: map[string]scraper.Adapter{
			"glassdoor": &stubAdapter{name: "glassdoor", err: errors.New("blocked")},
			"wayup":     &stubAdapter{name: "wayup", jobs: []models.JobPosting{posting("wayup", "Tutor", "Learning Center")}},
		},
		order: []string{"glassdoor", "wayup"},
	}

	agg := New(testConfig(t), factory)
	resp := agg.Search(context.Background(), &models.SearchRequest{})

	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "Tutor", resp.Jobs[0].Title)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "glassdoor")
}

func TestSearchUnknownSourceRecorded(t *testing.T) {
	factory := &stubFactory{adapters: map[string]scraper.Adapter{}, order: nil}

	agg := New(testConfig(t), factory)
	resp := agg.Search(context.Background(), &models.SearchRequest{Sources: []string{"monster"}})

	assert.Empty(t, resp.Jobs)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "monster")
}

func TestDeduplicateCapAndOrder(t *testing.T) {
	jobs := []models.JobPosting{
		posting("a", "Tutor", "Math Dept"),
		posting("b", "Tutor", "Math Dept"),
		posting("a", "Barista", "Starbucks"),
		posting("a", "Clerk", "Registrar"),
	}

	out := Deduplicate(jobs, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "Tutor", out[0].Title)
	assert.Equal(t, "a", out[0].Source)
	assert.Equal(t, "Barista", out[1].Title)
}
