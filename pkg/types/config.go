// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Weights are the linear-combination coefficients of the ranking score.
// They need not sum to 1.
type Weights struct {
	Main      float64 `json:"main" yaml:"main" mapstructure:"main"`
	Industry  float64 `json:"industry" yaml:"industry" mapstructure:"industry"`
	Location  float64 `json:"location" yaml:"location" mapstructure:"location"`
	Education float64 `json:"education" yaml:"education" mapstructure:"education"`
}

// DefaultWeights returns the weights used when none are configured.
func DefaultWeights() Weights {
	return Weights{Main: 0.5, Industry: 0.2, Location: 0.15, Education: 0.15}
}

// VectorizerConfig holds the tokenization parameters of one feature space.
type VectorizerConfig struct {
	// NgramMin and NgramMax bound the length of contiguous word sequences.
	NgramMin int `json:"ngram_min" yaml:"ngram_min" mapstructure:"ngram_min"`
	NgramMax int `json:"ngram_max" yaml:"ngram_max" mapstructure:"ngram_max"`

	// StopWords drops common English words before n-grams are formed.
	StopWords bool `json:"stop_words" yaml:"stop_words" mapstructure:"stop_words"`

	// MaxDF ignores terms whose document frequency exceeds this proportion
	// of the corpus. Zero or one disables the ceiling.
	MaxDF float64 `json:"max_df" yaml:"max_df" mapstructure:"max_df"`

	// SublinearTF replaces raw term counts with 1 + ln(count).
	SublinearTF bool `json:"sublinear_tf" yaml:"sublinear_tf" mapstructure:"sublinear_tf"`
}

// EngineConfig holds settings for fitting and ranking.
type EngineConfig struct {
	Weights Weights `json:"weights" yaml:"weights" mapstructure:"weights"`

	// TopK is the number of results returned when a request asks for 0 (default 5).
	TopK int `json:"top_k" yaml:"top_k" mapstructure:"top_k"`

	// MinEducationRank and MaxEducationRank bound the eligible education band.
	MinEducationRank int `json:"min_education_rank" yaml:"min_education_rank" mapstructure:"min_education_rank"`
	MaxEducationRank int `json:"max_education_rank" yaml:"max_education_rank" mapstructure:"max_education_rank"`

	Main     VectorizerConfig `json:"main" yaml:"main" mapstructure:"main"`
	Industry VectorizerConfig `json:"industry" yaml:"industry" mapstructure:"industry"`
	Location VectorizerConfig `json:"location" yaml:"location" mapstructure:"location"`
}

// CatalogConfig holds settings for the catalog store and its sources.
type CatalogConfig struct {
	// DataDir is the directory holding catalog.db.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// CSVPath is the default source table for ingest.
	CSVPath string `json:"csv_path" yaml:"csv_path" mapstructure:"csv_path"`

	// FetchTimeout bounds a remote catalog download.
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout" mapstructure:"fetch_timeout"`

	// FetchRetries is the retry budget for rate-limited or unavailable sources.
	FetchRetries int `json:"fetch_retries" yaml:"fetch_retries" mapstructure:"fetch_retries"`
}

// ArtifactConfig holds settings for the fitted-model bundle.
type ArtifactConfig struct {
	// Dir is the bundle directory.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// ModelVersion tags exported bundles.
	ModelVersion string `json:"model_version" yaml:"model_version" mapstructure:"model_version"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// BrowseLimit is the default page size for catalog listings (default 20).
	BrowseLimit int `json:"browse_limit" yaml:"browse_limit" mapstructure:"browse_limit"`

	// AdminToken guards the refit endpoint. Empty disables the endpoint.
	AdminToken string `json:"admin_token,omitempty" yaml:"admin_token,omitempty" mapstructure:"admin_token"`
}

// LogConfig selects the logger encoding and level.
type LogConfig struct {
	JSON  bool `json:"json" yaml:"json" mapstructure:"json"`
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	Catalog   CatalogConfig  `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Engine    EngineConfig   `json:"engine" yaml:"engine" mapstructure:"engine"`
	Artifacts ArtifactConfig `json:"artifacts" yaml:"artifacts" mapstructure:"artifacts"`
	Server    ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
	Log       LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Weights:          DefaultWeights(),
		TopK:             5,
		MinEducationRank: 3,
		MaxEducationRank: 5,
		Main:             VectorizerConfig{NgramMin: 1, NgramMax: 3, StopWords: true, MaxDF: 0.95},
		Industry:         VectorizerConfig{NgramMin: 1, NgramMax: 2},
		Location:         VectorizerConfig{NgramMin: 1, NgramMax: 2},
	}
}

// DefaultAppConfig returns every default setting.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Catalog: CatalogConfig{
			DataDir:      "data",
			CSVPath:      "data/internships.csv",
			FetchTimeout: 30 * time.Second,
			FetchRetries: 3,
		},
		Engine: DefaultEngineConfig(),
		Artifacts: ArtifactConfig{
			Dir:          "artifacts",
			ModelVersion: "1.0.0",
		},
		Server: ServerConfig{
			Addr:            ":5000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			BrowseLimit:     20,
		},
	}
}
