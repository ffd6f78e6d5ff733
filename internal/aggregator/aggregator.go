// Package aggregator runs one logical search across several source
// adapters and merges the results into a single capped, deduplicated
// list.
package aggregator

import (
	"context"
	"strings"
	"time"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/scraper"
	"jobscout/pkg/models"
)

// Aggregator invokes adapters sequentially, in caller-specified order.
// Adapters never share request state, so no coordination is needed beyond
// the accumulating result list.
type Aggregator struct {
	factory scraper.AdapterFactory
	cfg     *config.Config
	logger  logging.Logger
}

// New creates an aggregator over the given adapter factory.
func New(cfg *config.Config, factory scraper.AdapterFactory) *Aggregator {
	return &Aggregator{
		factory: factory,
		cfg:     cfg,
		logger:  logging.GetGlobalLogger(),
	}
}

// Search runs the request against every requested source. A failing
// source contributes nothing; its error is recorded in the response so
// the caller can tell partial results from complete ones.
func (a *Aggregator) Search(ctx context.Context, req *models.SearchRequest) *models.SearchResponse {
	started := time.Now()

	sourceNames := req.Sources
	if len(sourceNames) == 0 {
		sourceNames = a.factory.GetSupportedSources()
	}

	resp := &models.SearchResponse{
		Success:      true,
		SourceCounts: make(map[string]int, len(sourceNames)),
	}

	var all []models.JobPosting
	for _, name := range sourceNames {
		if ctx.Err() != nil {
			resp.Errors = append(resp.Errors, "search cancelled before source "+name)
			break
		}

		adapter, err := a.factory.CreateAdapter(name)
		if err != nil {
			a.logger.Warn("skipping unknown source", map[string]interface{}{
				"source": name, "error": err.Error(),
			})
			resp.Errors = append(resp.Errors, name+": "+err.Error())
			continue
		}

		jobs, err := adapter.Search(ctx, req)
		if err != nil {
			a.logger.Warn("source search failed", map[string]interface{}{
				"source": name, "error": err.Error(),
			})
			resp.Errors = append(resp.Errors, name+": "+err.Error())
		}

		a.logger.Info("source search complete", map[string]interface{}{
			"source": name, "jobs": len(jobs),
		})
		resp.SourceCounts[name] = len(jobs)
		all = append(all, jobs...)
	}

	max := a.cfg.Search.MaxTotalResults
	if req.MaxResults > 0 && len(sourceNames) == 1 && req.MaxResults < max {
		max = req.MaxResults
	}

	resp.Jobs = Deduplicate(all, max)
	resp.Total = len(resp.Jobs)
	resp.ProcessingTime = time.Since(started)
	return resp
}

// Deduplicate collapses records sharing a case-insensitive (title,
// company) pair, keeping the first occurrence in insertion order, then
// truncates to max. Source identity is deliberately ignored: the same
// real-world posting often appears verbatim on multiple boards under
// different source IDs.
func Deduplicate(jobs []models.JobPosting, max int) []models.JobPosting {
	seen := make(map[string]bool, len(jobs))
	unique := make([]models.JobPosting, 0, len(jobs))

	for _, job := range jobs {
		key := strings.ToLower(job.Title) + "\x00" + strings.ToLower(job.Company)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, job)
	}

	if max > 0 && len(unique) > max {
		unique = unique[:max]
	}
	return unique
}
