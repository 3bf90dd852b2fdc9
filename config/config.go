package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Version is reported by --version and in the User-Agent header
	Version = "0.1.0"
	// DefaultURL is the listing page that gets scraped
	DefaultURL = "https://news.ycombinator.com/news"
	// DefaultPosts is the number of posts printed when --posts is not given
	DefaultPosts = 30
	// MaxPosts is the upper bound for --posts
	MaxPosts = 100
	// DefaultUserAgent is sent with every HTTP request
	DefaultUserAgent = "hn-scraper/" + Version
	// DefaultTimeout bounds the single page request
	DefaultTimeout = 15 * time.Second
)

// Fetcher kinds accepted by the "fetcher" config key
const (
	FetcherHTTP    = "http"
	FetcherBrowser = "browser"
	FetcherFixture = "fixture"
)

// Config holds the scraper settings
type Config struct {
	URL       string        `yaml:"url"`
	Posts     int           `yaml:"posts"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	Fetcher   string        `yaml:"fetcher"`
	Fixture   string        `yaml:"fixture"`
}

// ConfigError reports an invalid setting. It is raised before any network call.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	return &Config{
		URL:       DefaultURL,
		Posts:     DefaultPosts,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
		Fetcher:   FetcherHTTP,
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate checks every setting
func (c *Config) Validate() error {
	if err := ValidatePosts(c.Posts); err != nil {
		return err
	}
	if c.URL == "" {
		return &ConfigError{Field: "url", Reason: "must not be empty"}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "timeout", Reason: fmt.Sprintf("must be positive, got %s", c.Timeout)}
	}

	switch c.Fetcher {
	case FetcherHTTP, FetcherBrowser:
	case FetcherFixture:
		if c.Fixture == "" {
			return &ConfigError{Field: "fixture", Reason: "a fixture path is required when fetcher is \"fixture\""}
		}
	default:
		return &ConfigError{Field: "fetcher", Reason: fmt.Sprintf("unknown fetcher %q", c.Fetcher)}
	}

	return nil
}

// ValidatePosts rejects post counts outside [0, MaxPosts]
func ValidatePosts(n int) error {
	if n < 0 || n > MaxPosts {
		return &ConfigError{
			Field:  "posts",
			Reason: fmt.Sprintf("%d is out of range, must be between 0 and %d", n, MaxPosts),
		}
	}
	return nil
}
