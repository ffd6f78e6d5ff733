package scraper

import (
	"context"

	"jobscout/pkg/models"
)

// Adapter defines the interface for all job board adapters
type Adapter interface {
	// Name returns the adapter's source identifier, e.g. "indeed"
	Name() string

	// Search runs one search against the source and returns canonical
	// postings. Partial results with an error are valid: the aggregator
	// keeps whatever was extracted before the failure.
	Search(ctx context.Context, req *models.SearchRequest) ([]models.JobPosting, error)
}

// AdapterFactory creates adapters based on source name
type AdapterFactory interface {
	// CreateAdapter creates a new adapter instance for the given source
	CreateAdapter(source string) (Adapter, error)

	// GetSupportedSources returns a list of supported source names
	GetSupportedSources() []string
}
