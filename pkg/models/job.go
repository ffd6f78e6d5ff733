package models

import "time"

// Job type values used across all sources
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeInternship = "Internship"
	JobTypeContract   = "Contract"
	JobTypeTemporary  = "Temporary"
	JobTypeWorkStudy  = "Work-study"
	JobTypeOnCampus   = "On-campus"
)

// Salary period values derived from raw salary strings
const (
	SalaryHourly  = "hourly"
	SalaryWeekly  = "weekly"
	SalaryMonthly = "monthly"
	SalaryYearly  = "yearly"
)

// JobTypes lists every job type the engine recognizes, in display order.
var JobTypes = []string{
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeInternship,
	JobTypeContract,
	JobTypeTemporary,
	JobTypeWorkStudy,
	JobTypeOnCampus,
}

// JobPosting is the canonical record every extraction strategy converges on.
// Source plus SourceID are deterministic per posting so the same posting
// re-scraped later produces the same identity.
type JobPosting struct {
	Source      string     `json:"source"`
	SourceID    string     `json:"source_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description,omitempty"`
	SalaryText  string     `json:"salary_text,omitempty"`
	SalaryMin   *float64   `json:"salary_min,omitempty"`
	SalaryMax   *float64   `json:"salary_max,omitempty"`
	SalaryType  string     `json:"salary_type,omitempty"`
	JobType     string     `json:"job_type,omitempty"`
	URL         string     `json:"url"`
	PostedDate  *time.Time `json:"posted_date,omitempty"`
	ScrapedAt   time.Time  `json:"scraped_at"`
}

// UniqueKey identifies a posting within its source, used by external
// storage for de-duplication against prior runs.
func (j *JobPosting) UniqueKey() string {
	return j.Source + ":" + j.SourceID
}
