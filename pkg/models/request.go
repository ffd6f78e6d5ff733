package models

// SearchRequest represents the request payload for a multi-source job search
type SearchRequest struct {
	Query       string   `json:"query"`
	Location    string   `json:"location"`
	RadiusMiles int      `json:"radius_miles" validate:"omitempty,min=0,max=500"`
	JobTypes    []string `json:"job_types,omitempty"`
	Sources     []string `json:"sources,omitempty"`
	MaxResults  int      `json:"max_results" validate:"omitempty,min=1,max=500"`
}

// WantsType reports whether the request filters for the given job type.
// An empty filter matches everything.
func (r *SearchRequest) WantsType(jobType string) bool {
	if len(r.JobTypes) == 0 || jobType == "" {
		return true
	}
	for _, jt := range r.JobTypes {
		if jt == jobType {
			return true
		}
	}
	return false
}
