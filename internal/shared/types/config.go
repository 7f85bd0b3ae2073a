package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	APIBaseURL     string   `json:"api_base_url" yaml:"api_base_url" toml:"api_base_url"`
	SessionFile    string   `json:"session_file" yaml:"session_file" toml:"session_file"`
	HTTPTimeout    int      `json:"http_timeout" yaml:"http_timeout" toml:"http_timeout"`
	QueryRetries   int      `json:"query_retries" yaml:"query_retries" toml:"query_retries"`
	QueryStaleTime int      `json:"query_stale_time" yaml:"query_stale_time" toml:"query_stale_time"`
	ReportDir      string   `json:"dir" yaml:"dir" toml:"dir"`
	ReportType     []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Debug          bool     `json:"debug" yaml:"debug" toml:"debug"`
}

// Defaults used when neither the config file nor the environment set a value.
const (
	DefaultAPIBaseURL   = "http://localhost:8080/api/"
	DefaultHTTPTimeout  = 15
	DefaultQueryRetries = 3
)

// DefaultConfig returns the configuration used before any file or environment is applied.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:   DefaultAPIBaseURL,
		HTTPTimeout:  DefaultHTTPTimeout,
		QueryRetries: DefaultQueryRetries,
		ReportType:   []string{"csv"},
	}
}
