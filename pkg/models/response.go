package models

import "time"

// SearchResponse represents the response from a multi-source search
type SearchResponse struct {
	Success        bool           `json:"success"`
	Jobs           []JobPosting   `json:"jobs"`
	Total          int            `json:"total"`
	SourceCounts   map[string]int `json:"source_counts,omitempty"`
	Errors         []string       `json:"errors,omitempty"`
	ProcessingTime time.Duration  `json:"processing_time"`
	RequestID      string         `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
