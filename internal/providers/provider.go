package providers

import (
	"context"

	"decky-backend/internal/config"
)

// Output is what an adapter hands back to the orchestrator. Exactly one
// field is set:
//   - URL: a hotlinked stock-photo URL, proxied to the caller unchanged
//   - Data: raw image bytes to be persisted
//   - SourceURL: an ephemeral vendor-hosted result the orchestrator must
//     download and persist before it expires
//   - FileRef: a scratch-file path or pre-built URL from a legacy adapter
type Output struct {
	URL       string
	Data      []byte
	SourceURL string
	FileRef   string
}

// ImageProvider produces image content for a prompt. Adapters never handle
// their own failures; every error propagates to the orchestrator boundary.
type ImageProvider interface {
	Name() string
	// Stock reports whether the provider is a stock-photo search rather
	// than a generative model.
	Stock() bool
	Generate(ctx context.Context, prompt string) (*Output, error)
}

// FromConfig resolves the single active provider. Returns nil when none is
// configured; the orchestrator then answers every request with the
// placeholder. The selection is made once here, not re-checked per call.
func FromConfig(cfg *config.Config) ImageProvider {
	switch cfg.ImageProvider {
	case config.ProviderPixabay:
		return NewPixabayClient(cfg.PixabayAPIBaseURL, cfg.PixabayAPIKey)
	case config.ProviderPexels:
		return NewPexelsClient(cfg.PexelsAPIBaseURL, cfg.PexelsAPIKey)
	case config.ProviderGeminiFlash:
		return NewGeminiClient(cfg.GoogleAPIBaseURL, cfg.GoogleAPIKey)
	case config.ProviderDalle3:
		return NewOpenAIClient(cfg.OpenAIAPIBaseURL, cfg.OpenAIAPIKey)
	}
	return nil
}
