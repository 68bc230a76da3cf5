package popgen

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centralizes pipeline configuration: captioning and generation
// provider endpoints, credentials, feature flags, and timeouts. Components
// never read globals; everything flows through this struct.
type Config struct {
	// Captioning backend: "hf" (hosted captioning endpoint) or "ollama".
	CaptionBackend string `env:"CAPTION_BACKEND" envDefault:"hf"`
	CaptionURL     string `env:"CAPTION_URL" envDefault:"https://api-inference.huggingface.co/models/Salesforce/blip-image-captioning-large"`
	CaptionAPIKey  string `env:"CAPTION_API_KEY"`
	OllamaURL      string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel    string `env:"OLLAMA_MODEL" envDefault:"llava"`

	// Generation providers, in chain priority order.
	Local3DURL      string `env:"LOCAL_3D_URL" envDefault:"http://localhost:5000/generate"`
	Remote3DURL     string `env:"REMOTE_3D_URL"`
	Remote3DAPIKey  string `env:"REMOTE_3D_API_KEY"`
	Remote3DEnabled bool   `env:"REMOTE_3D_ENABLED" envDefault:"false"`
	TextToImageURL  string `env:"TEXT_TO_IMAGE_URL" envDefault:"https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-xl-base-1.0"`
	TextToImageKey  string `env:"TEXT_TO_IMAGE_API_KEY"`

	// ProviderTimeout bounds each single provider call; PipelineTimeout
	// bounds a whole pipeline run.
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"60s"`
	PipelineTimeout time.Duration `env:"PIPELINE_TIMEOUT" envDefault:"5m"`

	// Photo intake limits.
	MinPhotoSize int `env:"MIN_PHOTO_SIZE" envDefault:"64"`
	MaxSendSize  int `env:"MAX_SEND_SIZE" envDefault:"1024"`
	SendQuality  int `env:"SEND_QUALITY" envDefault:"85"`
}

// DefaultConfig returns a configuration with default values, ignoring the
// environment.
func DefaultConfig() Config {
	return Config{
		CaptionBackend:  "hf",
		CaptionURL:      "https://api-inference.huggingface.co/models/Salesforce/blip-image-captioning-large",
		OllamaURL:       "http://localhost:11434",
		OllamaModel:     "llava",
		Local3DURL:      "http://localhost:5000/generate",
		TextToImageURL:  "https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-xl-base-1.0",
		ProviderTimeout: 60 * time.Second,
		PipelineTimeout: 5 * time.Minute,
		MinPhotoSize:    64,
		MaxSendSize:     1024,
		SendQuality:     85,
	}
}

// LoadConfig parses the configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.CaptionBackend {
	case "hf", "ollama":
	default:
		return fmt.Errorf("caption backend must be hf or ollama, got %q", c.CaptionBackend)
	}

	if c.Remote3DEnabled && c.Remote3DURL == "" {
		return fmt.Errorf("remote 3D URL is required when the remote 3D provider is enabled")
	}

	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}

	if c.PipelineTimeout <= 0 {
		return fmt.Errorf("pipeline timeout must be positive")
	}

	if c.MinPhotoSize < 1 {
		return fmt.Errorf("minimum photo size must be positive")
	}

	if c.SendQuality < 1 || c.SendQuality > 100 {
		return fmt.Errorf("send quality must be between 1 and 100")
	}

	return nil
}
