package types

import "time"

// HTTPConfig holds HTTP settings for E-utilities requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pharma-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for one search-and-extract run.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities root; esearch.fcgi and efetch.fcgi are
	// resolved against it.
	BaseURL string `json:"eutils_base" yaml:"eutils_base"`

	// Limit is the maximum number of PubMed ids requested (default 50).
	Limit int `json:"limit" yaml:"limit"`

	// Years restricts results to these publication years. Empty means any.
	Years []string `json:"years,omitempty" yaml:"years,omitempty"`

	// Email and Tool identify the caller to NCBI. Both are optional.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Tool  string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// Debug enables diagnostic logging. It never changes results.
	Debug bool `json:"debug" yaml:"debug"`

	// LogLevel is the stderr log level when Debug is off ("debug", "info",
	// "warn", "error").
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// OutputFormat selects how papers are rendered.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputCSV   OutputFormat = "csv"
	OutputJSON  OutputFormat = "json"
)
