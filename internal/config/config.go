package config

import (
	"fmt"
	"os"
)

// Image provider values accepted in IMAGE_PROVIDER. Empty means no provider
// is configured and every generation request resolves to the placeholder.
const (
	ProviderPexels      = "pexels"
	ProviderPixabay     = "pixabay"
	ProviderDalle3      = "dall-e-3"
	ProviderGeminiFlash = "gemini-flash"
)

type Config struct {
	// Image providers
	ImageProvider     string
	PexelsAPIKey      string
	PexelsAPIBaseURL  string
	PixabayAPIKey     string
	PixabayAPIBaseURL string
	OpenAIAPIKey      string
	OpenAIAPIBaseURL  string
	GoogleAPIKey      string
	GoogleAPIBaseURL  string

	// Supabase storage
	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseStorageBucket  string

	// Clerk auth
	ClerkIssuer   string
	ClerkJWKSURL  string
	ClerkAudience string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	cfg := &Config{
		ImageProvider:     getEnv("IMAGE_PROVIDER", ""),
		PexelsAPIKey:      getEnv("PEXELS_API_KEY", ""),
		PexelsAPIBaseURL:  getEnv("PEXELS_API_BASE_URL", "https://api.pexels.com/v1"),
		PixabayAPIKey:     getEnv("PIXABAY_API_KEY", ""),
		PixabayAPIBaseURL: getEnv("PIXABAY_API_BASE_URL", "https://pixabay.com/api"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIAPIBaseURL:  getEnv("OPENAI_API_BASE_URL", "https://api.openai.com/v1"),
		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", ""),
		GoogleAPIBaseURL:  getEnv("GOOGLE_API_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "presentation-assets"),

		ClerkIssuer:   getEnv("CLERK_ISSUER", ""),
		ClerkJWKSURL:  getEnv("CLERK_JWKS_URL", ""),
		ClerkAudience: getEnv("CLERK_AUDIENCE", "decky-api"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ClerkIssuer == "" {
		return fmt.Errorf("CLERK_ISSUER is required")
	}
	if c.ClerkJWKSURL == "" {
		return fmt.Errorf("CLERK_JWKS_URL is required")
	}
	switch c.ImageProvider {
	case "", ProviderPexels, ProviderPixabay, ProviderDalle3, ProviderGeminiFlash:
	default:
		return fmt.Errorf("unknown IMAGE_PROVIDER %q", c.ImageProvider)
	}
	return nil
}

// StorageConfigured reports whether Supabase storage settings are present.
// Construction of the storage client still validates all of them.
func (c *Config) StorageConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceRoleKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
