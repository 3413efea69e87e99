package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type AppConfig struct {
	Port           string `envconfig:"PORT"              yaml:"port"`
	DBPath         string `envconfig:"DB_PATH"           yaml:"dbPath"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" yaml:"dbMaxOpenConns"`
	LogLevel       string `envconfig:"LOG_LEVEL"         yaml:"logLevel"`
	LogFormat      string `envconfig:"LOG_FORMAT"        yaml:"logFormat"` // text|json

	LLMEndpoint    string        `envconfig:"LLM_ENDPOINT"    yaml:"llmEndpoint"`
	LLMAPIKey      string        `envconfig:"LLM_API_KEY"     yaml:"llmApiKey"`
	LLMModel       string        `envconfig:"LLM_MODEL"       yaml:"llmModel"`
	LLMTimeout     time.Duration `envconfig:"LLM_TIMEOUT"     yaml:"llmTimeout"`
	LLMTemperature float64       `envconfig:"LLM_TEMPERATURE" yaml:"llmTemperature"`

	GeocoderEnabled   bool          `envconfig:"GEOCODER_ENABLED"    yaml:"geocoderEnabled"`
	GeocoderURL       string        `envconfig:"GEOCODER_URL"        yaml:"geocoderUrl"`
	GeocoderUserAgent string        `envconfig:"GEOCODER_USER_AGENT" yaml:"geocoderUserAgent"`
	GeocoderTimeout   time.Duration `envconfig:"GEOCODER_TIMEOUT"    yaml:"geocoderTimeout"`
	GeocodeCacheTTL   time.Duration `envconfig:"GEOCODE_CACHE_TTL"   yaml:"geocodeCacheTtl"`
	GeocodeWorkers    int           `envconfig:"GEOCODE_WORKERS"     yaml:"geocodeWorkers"`

	UploadMaxBytes int64  `envconfig:"UPLOAD_MAX_BYTES" yaml:"uploadMaxBytes"`
	SeedFile       string `envconfig:"SEED_FILE"        yaml:"seedFile"`
}

// Defaults are applied first; the YAML file and then the environment
// override them.
func Defaults() AppConfig {
	return AppConfig{
		Port:              "8080",
		DBPath:            "musafir.db",
		DBMaxOpenConns:    1,
		LogLevel:          "info",
		LogFormat:         "text",
		LLMModel:          "llama3.1-8b",
		LLMTimeout:        60 * time.Second,
		LLMTemperature:    0.2,
		GeocoderEnabled:   true,
		GeocoderURL:       "https://nominatim.openstreetmap.org",
		GeocoderUserAgent: "musafir-itinerary/1.0",
		GeocoderTimeout:   10 * time.Second,
		GeocodeCacheTTL:   24 * time.Hour,
		GeocodeWorkers:    4,
		UploadMaxBytes:    5 << 20,
	}
}

func Load() (AppConfig, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debugf("[cfg] no .env file loaded: %v", err)
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return AppConfig{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("unmarshaling config file: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parsing environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("missing required config: DB_PATH")
	}
	if c.LLMModel == "" {
		return fmt.Errorf("missing required config: LLM_MODEL")
	}
	if c.GeocodeWorkers < 1 {
		return fmt.Errorf("GEOCODE_WORKERS must be >= 1, got %d", c.GeocodeWorkers)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// UseLLM reports whether a real completion endpoint is configured. Without
// one the offline mock client is used.
func (c AppConfig) UseLLM() bool { return c.LLMEndpoint != "" && c.LLMAPIKey != "" }

// Redacted is safe to log.
func (c AppConfig) Redacted() AppConfig {
	if c.LLMAPIKey != "" {
		c.LLMAPIKey = "***"
	}
	return c
}
