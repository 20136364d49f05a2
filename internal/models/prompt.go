package models

import "fmt"

// ImagePrompt is the input to image generation: the slide subject plus an
// optional theme descriptor. Immutable once constructed.
type ImagePrompt struct {
	Prompt      string
	ThemePrompt string
}

// ImagePromptText returns the prompt handed to a provider. Stock search
// degrades with decorative theme language, so callers pass withTheme=false
// for stock providers and true for generative ones.
func (p ImagePrompt) ImagePromptText(withTheme bool) string {
	if withTheme && p.ThemePrompt != "" {
		return fmt.Sprintf("%s. Theme: %s", p.Prompt, p.ThemePrompt)
	}
	return p.Prompt
}
