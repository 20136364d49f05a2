package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"decky-backend/internal/models"
)

func TestImagePromptText(t *testing.T) {
	prompt := models.ImagePrompt{Prompt: "a red fox", ThemePrompt: "watercolor"}

	assert.Equal(t, "a red fox. Theme: watercolor", prompt.ImagePromptText(true))
	assert.Equal(t, "a red fox", prompt.ImagePromptText(false))
}

func TestImagePromptText_NoTheme(t *testing.T) {
	prompt := models.ImagePrompt{Prompt: "mountain lake"}

	assert.Equal(t, "mountain lake", prompt.ImagePromptText(true))
	assert.Equal(t, "mountain lake", prompt.ImagePromptText(false))
}
