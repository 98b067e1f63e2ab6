package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the top-level configuration document, loaded once at
// startup and never mutated afterwards.
type Config struct {
	// DatabasePath locates the SQLite database file.
	DatabasePath string `json:"database_path"`

	// BaseDataPath is the root of the lexicon data folders consumed by
	// the importer. Optional; import commands fail without it.
	BaseDataPath string `json:"base_data_path,omitempty"`

	// ServerAddr is the listen address of the HTTP dispatch API.
	ServerAddr string `json:"server_addr,omitempty"`

	Lexicons []LexiconSetting `json:"lexicons"`

	WordGenerator WordGeneratorSetting `json:"word_generator,omitempty"`
}

// LexiconSetting is one lexicon entry as written in the config file.
type LexiconSetting struct {
	Name           string   `json:"name"`
	Handler        string   `json:"handler"`
	TableName      string   `json:"table_name"`
	SearchColumn   string   `json:"search_column,omitempty"` // default "term"
	Keywords       []string `json:"keywords"`
	Placeholder    string   `json:"placeholder"`
	FolderName     string   `json:"folder_name,omitempty"`
	FileExtensions []string `json:"file_extensions,omitempty"`
	RetryAttempts  *int     `json:"retry_attempts,omitempty"` // default 2
	FailureMessage string   `json:"failure_message"`
}

// WordGeneratorSetting configures the 造词 feature.
type WordGeneratorSetting struct {
	Enabled                   bool               `json:"enabled"`
	ModelName                 string             `json:"model_name,omitempty"`
	BaseURL                   string             `json:"base_url,omitempty"`
	APIKeys                   []string           `json:"api_keys,omitempty"`
	MaxCombinationsPerRequest int                `json:"max_combinations_per_request,omitempty"`
	GenerationProbabilities   map[string]float64 `json:"generation_probabilities,omitempty"`
	TimeoutMs                 int                `json:"timeout_ms,omitempty"`
}

const (
	defaultSearchColumn  = "term"
	defaultRetryAttempts = 2
	defaultModelName     = "deepseek-v2"
	defaultBaseURL       = "https://api.siliconflow.cn/v1"
	defaultMaxPerRequest = 100
	defaultTimeoutMs     = 60000
	defaultServerAddr    = ":8787"
	defaultDatabasePath  = "brainhole.db"
)

// Load reads, decodes, defaults, and validates the config file at path.
// Validation failures return *domain.ConfigError and must abort startup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DatabasePath == "" {
		c.DatabasePath = defaultDatabasePath
	}
	if c.ServerAddr == "" {
		c.ServerAddr = defaultServerAddr
	}
	for i := range c.Lexicons {
		l := &c.Lexicons[i]
		if l.SearchColumn == "" {
			l.SearchColumn = defaultSearchColumn
		}
		if l.RetryAttempts == nil {
			n := defaultRetryAttempts
			l.RetryAttempts = &n
		}
	}

	wg := &c.WordGenerator
	if wg.ModelName == "" {
		wg.ModelName = defaultModelName
	}
	if wg.BaseURL == "" {
		wg.BaseURL = defaultBaseURL
	}
	if wg.MaxCombinationsPerRequest == 0 {
		wg.MaxCombinationsPerRequest = defaultMaxPerRequest
	}
	if len(wg.GenerationProbabilities) == 0 {
		wg.GenerationProbabilities = map[string]float64{"2": 0.80, "4": 0.15, "3": 0.05}
	}
	if wg.TimeoutMs == 0 {
		wg.TimeoutMs = defaultTimeoutMs
	}
}
