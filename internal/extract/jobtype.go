package extract

import (
	"strings"

	"jobscout/pkg/models"
)

// KeywordJobType maps free text onto the fixed job-type enumeration by
// substring test. Returns "" when nothing matches.
func KeywordJobType(text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "full"):
		return models.JobTypeFullTime
	case strings.Contains(lower, "part"):
		return models.JobTypePartTime
	case strings.Contains(lower, "intern"):
		return models.JobTypeInternship
	case strings.Contains(lower, "work-study"), strings.Contains(lower, "work study"),
		strings.Contains(lower, "workstudy"):
		return models.JobTypeWorkStudy
	case strings.Contains(lower, "on-campus"), strings.Contains(lower, "on campus"),
		strings.Contains(lower, "oncampus"):
		return models.JobTypeOnCampus
	case strings.Contains(lower, "contract"):
		return models.JobTypeContract
	case strings.Contains(lower, "temporary"):
		return models.JobTypeTemporary
	}

	return ""
}
