package scraper

import (
	"jobscout/internal/config"
	"jobscout/internal/scraper/sources"
	"jobscout/pkg/utils"
)

// DefaultAdapterFactory implements AdapterFactory
type DefaultAdapterFactory struct {
	config *config.Config
}

// NewAdapterFactory creates a new adapter factory
func NewAdapterFactory(cfg *config.Config) AdapterFactory {
	return &DefaultAdapterFactory{config: cfg}
}

// CreateAdapter creates a new adapter instance for the given source
func (f *DefaultAdapterFactory) CreateAdapter(source string) (Adapter, error) {
	switch source {
	case "indeed":
		return sources.NewIndeed(f.config), nil
	case "linkedin":
		return sources.NewLinkedIn(f.config), nil
	case "glassdoor":
		return sources.NewGlassdoor(f.config), nil
	case "collegerecruiter":
		return sources.NewCollegeRecruiter(f.config), nil
	case "wayup":
		return sources.NewWayUp(f.config), nil
	case "university":
		adapter := sources.NewUniversityFromConfig(f.config)
		if adapter == nil {
			return nil, utils.NewValidationError("university source requires a configured board URL")
		}
		return adapter, nil
	default:
		return nil, utils.NewBadRequestError("unsupported job source: " + source)
	}
}

// GetSupportedSources returns a list of supported source names
func (f *DefaultAdapterFactory) GetSupportedSources() []string {
	supported := []string{"indeed", "linkedin", "glassdoor", "collegerecruiter", "wayup"}
	if f.config.University.BaseURL != "" {
		supported = append(supported, "university")
	}
	return supported
}
