package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PortalSystem describes one third-party career portal product the
// university adapter should recognize.
type PortalSystem struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Domain   string   `yaml:"domain"`
}

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Scraper struct {
		UserAgent      string        `yaml:"user_agent"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"30s"`
		MaxRetries     int           `yaml:"max_retries" default:"3"`

		// Per-source politeness delays between consecutive requests.
		Delays struct {
			Indeed           time.Duration `yaml:"indeed" default:"2s"`
			LinkedIn         time.Duration `yaml:"linkedin" default:"3s"`
			Glassdoor        time.Duration `yaml:"glassdoor" default:"4s"`
			CollegeRecruiter time.Duration `yaml:"collegerecruiter" default:"2500ms"`
			WayUp            time.Duration `yaml:"wayup" default:"2500ms"`
			University       time.Duration `yaml:"university" default:"2s"`
		} `yaml:"delays"`
	} `yaml:"scraper"`

	Search struct {
		MaxResultsPerSource int           `yaml:"max_results_per_source" default:"50"`
		MaxTotalResults     int           `yaml:"max_total_results" default:"200"`
		DefaultRadiusMiles  int           `yaml:"default_radius_miles" default:"25"`
		Timeout             time.Duration `yaml:"timeout" default:"120s"`
	} `yaml:"search"`

	University struct {
		Name       string `yaml:"name"`
		BaseURL    string `yaml:"base_url"`
		UseAuth    bool   `yaml:"use_auth"`
		AuthCookie string `yaml:"auth_cookie"`
	} `yaml:"university"`

	Portal struct {
		Systems []PortalSystem `yaml:"systems"`
	} `yaml:"portal"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	// Expand ${VAR} syntax
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if env var not found
	})

	// Expand $VAR syntax (but avoid replacing ${VAR} that was already processed)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if env var not found
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Scraper.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	config.Scraper.RequestTimeout = 30 * time.Second
	config.Scraper.MaxRetries = 3
	config.Scraper.Delays.Indeed = 2 * time.Second
	config.Scraper.Delays.LinkedIn = 3 * time.Second
	config.Scraper.Delays.Glassdoor = 4 * time.Second
	config.Scraper.Delays.CollegeRecruiter = 2500 * time.Millisecond
	config.Scraper.Delays.WayUp = 2500 * time.Millisecond
	config.Scraper.Delays.University = 2 * time.Second

	config.Search.MaxResultsPerSource = 50
	config.Search.MaxTotalResults = 200
	config.Search.DefaultRadiusMiles = 25
	config.Search.Timeout = 120 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if userAgent := os.Getenv("SCRAPER_USER_AGENT"); userAgent != "" {
		c.Scraper.UserAgent = userAgent
	}

	if timeout := os.Getenv("SCRAPER_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Scraper.RequestTimeout = d
		}
	}

	if retries := os.Getenv("SCRAPER_MAX_RETRIES"); retries != "" {
		if r, err := strconv.Atoi(retries); err == nil {
			c.Scraper.MaxRetries = r
		}
	}

	if maxResults := os.Getenv("SEARCH_MAX_RESULTS_PER_SOURCE"); maxResults != "" {
		if m, err := strconv.Atoi(maxResults); err == nil {
			c.Search.MaxResultsPerSource = m
		}
	}

	if maxTotal := os.Getenv("SEARCH_MAX_TOTAL_RESULTS"); maxTotal != "" {
		if m, err := strconv.Atoi(maxTotal); err == nil {
			c.Search.MaxTotalResults = m
		}
	}

	if name := os.Getenv("UNIVERSITY_NAME"); name != "" {
		c.University.Name = name
	}

	if baseURL := os.Getenv("UNIVERSITY_BASE_URL"); baseURL != "" {
		c.University.BaseURL = baseURL
	}

	// The session cookie is a credential and should come from the
	// environment rather than the config file.
	if cookie := os.Getenv("UNIVERSITY_AUTH_COOKIE"); cookie != "" {
		c.University.AuthCookie = cookie
		c.University.UseAuth = true
	}

	if useAuth := os.Getenv("UNIVERSITY_USE_AUTH"); useAuth != "" {
		c.University.UseAuth = useAuth == "true" || useAuth == "1"
	}
}
