package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobscout/pkg/models"
)

func TestIsValidPosting(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		company string
		valid   bool
	}{
		{"real posting", "Barista", "Starbucks", true},
		{"fully masked title", "****************", "Starbucks", false},
		{"mostly masked title", "Bar*** ********", "Starbucks", false},
		{"empty title", "", "Starbucks", false},
		{"too short title", "IT", "Starbucks", false},
		{"placeholder confidential", "Confidential Position", "Acme", false},
		{"placeholder title here", "Job Title Here", "Acme", false},
		{"placeholder dashes", "----", "Acme", false},
		{"masked company", "Warehouse Associate", "**********", false},
		{"no company is fine", "Warehouse Associate", "", true},
		{"asterisk below threshold", "C* Developer", "Acme", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &models.JobPosting{Title: tt.title, Company: tt.company}
			assert.Equal(t, tt.valid, IsValidPosting(job))
		})
	}
}

func TestFilterValidPostings(t *testing.T) {
	jobs := []models.JobPosting{
		{Title: "Barista", Company: "Starbucks"},
		{Title: "****************", Company: "Hidden Co"},
		{Title: "Peer Tutor", Company: "State College"},
	}

	valid := FilterValidPostings(jobs)

	assert.Len(t, valid, 2)
	assert.Equal(t, "Barista", valid[0].Title)
	assert.Equal(t, "Peer Tutor", valid[1].Title)
}
