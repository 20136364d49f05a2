package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"decky-backend/internal/config"
	"decky-backend/internal/providers"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		provider string
		name     string
		stock    bool
	}{
		{config.ProviderPexels, "pexels", true},
		{config.ProviderPixabay, "pixabay", true},
		{config.ProviderDalle3, "dall-e-3", false},
		{config.ProviderGeminiFlash, "gemini-flash", false},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p := providers.FromConfig(&config.Config{ImageProvider: tt.provider})
			assert.NotNil(t, p)
			assert.Equal(t, tt.name, p.Name())
			assert.Equal(t, tt.stock, p.Stock())
		})
	}
}

func TestFromConfig_NoneConfigured(t *testing.T) {
	assert.Nil(t, providers.FromConfig(&config.Config{}))
}
