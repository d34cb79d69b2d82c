package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Google     GoogleConfig
	Gemini     GeminiConfig
	Pricing    PricingConfig
	Enrichment EnrichmentConfig
	Taxonomy   TaxonomyConfig
	Storage    StorageConfig
	S3         S3Config
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// GoogleConfig holds the shared Google API credentials. The same API key is
// used for both the Gemini and Custom Search calls; CSEID identifies the
// programmable search engine used for image search.
type GoogleConfig struct {
	APIKey string `mapstructure:"api_key"`
	CSEID  string `mapstructure:"cse_id"`
}

// GeminiConfig holds generation model settings.
type GeminiConfig struct {
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	Mock        bool   `mapstructure:"mock"`
}

// PricingConfig holds token cost rates. Input/output rates are USD per
// million tokens; USDToINR converts the summed USD cost to INR.
type PricingConfig struct {
	InputCostPerMillion  float64 `mapstructure:"input_cost_per_million"`
	OutputCostPerMillion float64 `mapstructure:"output_cost_per_million"`
	USDToINR             float64 `mapstructure:"usd_to_inr"`
}

// EnrichmentConfig holds batch processing limits and tracking flags.
type EnrichmentConfig struct {
	MaxBatchSize        int  `mapstructure:"max_batch_size"`
	MaxRowsToProcess    int  `mapstructure:"max_rows_to_process"`
	EnableTokenTracking bool `mapstructure:"enable_token_tracking"`
	IncludeRawResponse  bool `mapstructure:"include_raw_response"`
}

// TaxonomyConfig holds the attribute taxonomy workbook location.
type TaxonomyConfig struct {
	Path string `mapstructure:"path"`
}

// StorageConfig selects the artifact store backend.
type StorageConfig struct {
	Backend   string `mapstructure:"backend"`
	OutputDir string `mapstructure:"output_dir"`
}

// S3Config holds AWS S3 settings for the s3 artifact backend.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SearchConfigured reports whether image search has usable credentials.
func (g *GoogleConfig) SearchConfigured() bool {
	return g.APIKey != "" && g.CSEID != ""
}

// Load reads configuration from environment variables with the ENRICHLY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENRICHLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Google API defaults
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.cse_id", "")

	// Gemini defaults
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout_secs", 120)
	v.SetDefault("gemini.mock", false)

	// Pricing defaults ($0.10/M input, $0.40/M output, 1 USD = 86 INR)
	v.SetDefault("pricing.input_cost_per_million", 0.10)
	v.SetDefault("pricing.output_cost_per_million", 0.40)
	v.SetDefault("pricing.usd_to_inr", 86.0)

	// Enrichment defaults
	v.SetDefault("enrichment.max_batch_size", 50)
	v.SetDefault("enrichment.max_rows_to_process", 2000)
	v.SetDefault("enrichment.enable_token_tracking", true)
	v.SetDefault("enrichment.include_raw_response", true)

	// Taxonomy defaults
	v.SetDefault("taxonomy.path", "./data/taxonomy.xlsx")

	// Storage defaults
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.output_dir", "./output")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "enrichly-artifacts")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.key_prefix", "enriched")

	// CORS defaults (the API is consumed by internal tools; allow all)
	v.SetDefault("cors.allowed_origins", "*")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                        "ENRICHLY_SERVER_PORT",
		"server.read_timeout":                "ENRICHLY_SERVER_READ_TIMEOUT",
		"server.write_timeout":               "ENRICHLY_SERVER_WRITE_TIMEOUT",
		"server.environment":                 "ENRICHLY_SERVER_ENVIRONMENT",
		"gemini.model":                       "ENRICHLY_GEMINI_MODEL",
		"gemini.timeout_secs":                "ENRICHLY_GEMINI_TIMEOUT_SECS",
		"gemini.mock":                        "ENRICHLY_GEMINI_MOCK",
		"pricing.input_cost_per_million":     "ENRICHLY_PRICING_INPUT_COST_PER_MILLION",
		"pricing.output_cost_per_million":    "ENRICHLY_PRICING_OUTPUT_COST_PER_MILLION",
		"pricing.usd_to_inr":                 "ENRICHLY_PRICING_USD_TO_INR",
		"enrichment.max_batch_size":          "ENRICHLY_ENRICHMENT_MAX_BATCH_SIZE",
		"enrichment.max_rows_to_process":     "ENRICHLY_ENRICHMENT_MAX_ROWS_TO_PROCESS",
		"enrichment.enable_token_tracking":   "ENRICHLY_ENRICHMENT_ENABLE_TOKEN_TRACKING",
		"enrichment.include_raw_response":    "ENRICHLY_ENRICHMENT_INCLUDE_RAW_RESPONSE",
		"taxonomy.path":                      "ENRICHLY_TAXONOMY_PATH",
		"storage.backend":                    "ENRICHLY_STORAGE_BACKEND",
		"storage.output_dir":                 "ENRICHLY_STORAGE_OUTPUT_DIR",
		"s3.region":                          "ENRICHLY_S3_REGION",
		"s3.bucket":                          "ENRICHLY_S3_BUCKET",
		"s3.endpoint":                        "ENRICHLY_S3_ENDPOINT",
		"s3.access_key":                      "ENRICHLY_S3_ACCESS_KEY",
		"s3.secret_key":                      "ENRICHLY_S3_SECRET_KEY",
		"s3.key_prefix":                      "ENRICHLY_S3_KEY_PREFIX",
		"cors.allowed_origins":               "ENRICHLY_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// The Google credentials also accept their unprefixed names, which is
	// what existing deployments export.
	_ = v.BindEnv("google.api_key", "ENRICHLY_GOOGLE_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("google.cse_id", "ENRICHLY_GOOGLE_CSE_ID", "GOOGLE_CSE_ID")

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ENRICHLY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ENRICHLY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Google = GoogleConfig{
		APIKey: v.GetString("google.api_key"),
		CSEID:  v.GetString("google.cse_id"),
	}
	cfg.Gemini = GeminiConfig{
		Model:       v.GetString("gemini.model"),
		TimeoutSecs: v.GetInt("gemini.timeout_secs"),
		Mock:        v.GetBool("gemini.mock"),
	}
	cfg.Pricing = PricingConfig{
		InputCostPerMillion:  v.GetFloat64("pricing.input_cost_per_million"),
		OutputCostPerMillion: v.GetFloat64("pricing.output_cost_per_million"),
		USDToINR:             v.GetFloat64("pricing.usd_to_inr"),
	}
	cfg.Enrichment = EnrichmentConfig{
		MaxBatchSize:        v.GetInt("enrichment.max_batch_size"),
		MaxRowsToProcess:    v.GetInt("enrichment.max_rows_to_process"),
		EnableTokenTracking: v.GetBool("enrichment.enable_token_tracking"),
		IncludeRawResponse:  v.GetBool("enrichment.include_raw_response"),
	}
	cfg.Taxonomy = TaxonomyConfig{
		Path: v.GetString("taxonomy.path"),
	}
	cfg.Storage = StorageConfig{
		Backend:   v.GetString("storage.backend"),
		OutputDir: v.GetString("storage.output_dir"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		KeyPrefix: v.GetString("s3.key_prefix"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must not be empty")
	}
	if c.Enrichment.MaxBatchSize < 1 {
		return fmt.Errorf("enrichment.max_batch_size must be at least 1, got %d", c.Enrichment.MaxBatchSize)
	}
	if c.Enrichment.MaxRowsToProcess < 1 {
		return fmt.Errorf("enrichment.max_rows_to_process must be at least 1, got %d", c.Enrichment.MaxRowsToProcess)
	}
	if c.Pricing.InputCostPerMillion < 0 || c.Pricing.OutputCostPerMillion < 0 {
		return fmt.Errorf("pricing rates must be non-negative")
	}
	if c.Pricing.USDToINR <= 0 {
		return fmt.Errorf("pricing.usd_to_inr must be positive, got %v", c.Pricing.USDToINR)
	}
	switch c.Storage.Backend {
	case "local":
		if c.Storage.OutputDir == "" {
			return fmt.Errorf("storage.output_dir must not be empty for the local backend")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket must not be empty for the s3 backend")
		}
	default:
		return fmt.Errorf("storage.backend must be local or s3, got %q", c.Storage.Backend)
	}
	return nil
}
