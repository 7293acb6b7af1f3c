package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-harvester/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the E-utilities client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// Tool is the tool name reported to the service with every request.
	Tool string `json:"tool" yaml:"tool"`

	// Email is the contact address reported with every request.
	Email string `json:"email" yaml:"email"`

	// APIKey is an optional NCBI API key. When set, the request rate
	// limit rises from 3 to 10 requests per second.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retries on HTTP 429 responses.
	// Zero disables retrying; failures then surface immediately.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// StartYear is the lower bound of the date axis used when an
	// over-cap query has to be partitioned (default 1900).
	StartYear int `json:"start_year" yaml:"start_year"`
}

// StoreConfig holds settings for the local article store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
