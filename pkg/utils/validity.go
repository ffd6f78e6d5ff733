package utils

import (
	"strings"

	"jobscout/pkg/models"
)

// Placeholder fragments that show up in paywalled or redacted listings.
// Matched case-insensitively against the title.
var placeholderPatterns = []string{
	"****", "----", "....", "xxxx",
	"confidential", "hidden", "private",
	"position title", "job title", "title here",
}

// IsValidPosting reports whether a posting carries real (non-masked)
// content. Several sources render listings behind a paywall with titles
// redacted to asterisks; those still parse as valid HTML and must not be
// surfaced as real opportunities.
func IsValidPosting(job *models.JobPosting) bool {
	if len(job.Title) < 3 {
		return false
	}

	if asteriskRatio(job.Title) > 0.3 {
		return false
	}

	titleLower := strings.ToLower(job.Title)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(titleLower, pattern) {
			return false
		}
	}

	if job.Company != "" && asteriskRatio(job.Company) > 0.3 {
		return false
	}

	return true
}

// FilterValidPostings drops postings with masked or placeholder content.
func FilterValidPostings(jobs []models.JobPosting) []models.JobPosting {
	valid := make([]models.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if IsValidPosting(&job) {
			valid = append(valid, job)
		}
	}
	return valid
}

func asteriskRatio(s string) float64 {
	if s == "" {
		return 0
	}
	return float64(strings.Count(s, "*")) / float64(len(s))
}
