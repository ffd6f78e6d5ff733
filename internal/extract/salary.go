package extract

import (
	"regexp"
	"strconv"
	"strings"

	"jobscout/pkg/models"
)

var salaryNumberRe = regexp.MustCompile(`[\d.]+[km]?`)

// ParseSalary parses a raw display string ("$15.00 - $20.00 per hour",
// "$45k") into numeric bounds and a period. The unit is classified by
// substring with yearly as the default; "k" and "m" suffixes scale by a
// thousand and a million. Zero usable numbers means no salary at all.
func ParseSalary(text string) (min, max *float64, salaryType string) {
	if text == "" {
		return nil, nil, ""
	}

	lower := strings.ToLower(text)
	lower = strings.ReplaceAll(lower, ",", "")
	lower = strings.ReplaceAll(lower, "$", "")

	salaryType = models.SalaryYearly
	switch {
	case strings.Contains(lower, "hour"), strings.Contains(lower, "/hr"):
		salaryType = models.SalaryHourly
	case strings.Contains(lower, "week"):
		salaryType = models.SalaryWeekly
	case strings.Contains(lower, "month"):
		salaryType = models.SalaryMonthly
	}

	var numbers []float64
	for _, token := range salaryNumberRe.FindAllString(lower, -1) {
		factor := 1.0
		switch {
		case strings.HasSuffix(token, "k"):
			factor = 1000
			token = strings.TrimSuffix(token, "k")
		case strings.HasSuffix(token, "m"):
			factor = 1000000
			token = strings.TrimSuffix(token, "m")
		}
		val, err := strconv.ParseFloat(token, 64)
		if err != nil || val <= 0 {
			continue
		}
		numbers = append(numbers, val*factor)
	}

	if len(numbers) == 0 {
		return nil, nil, ""
	}

	lo, hi := numbers[0], numbers[0]
	for _, n := range numbers[1:] {
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return &lo, &hi, salaryType
}

// ApplySalary parses the raw text and fills a posting's salary fields in
// one step.
func ApplySalary(job *models.JobPosting, text string) {
	if text == "" {
		return
	}
	job.SalaryText = text
	job.SalaryMin, job.SalaryMax, job.SalaryType = ParseSalary(text)
}
