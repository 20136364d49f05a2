package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"decky-backend/internal/models"
	"decky-backend/internal/providers"
	"decky-backend/internal/supabase"
)

const signedURLExpirySeconds = 3600

// ErrNoImage marks the branch where a provider call returned without error
// yet produced no usable output shape.
var ErrNoImage = errors.New("provider returned no usable image output")

// ImageGenerationService turns an ImagePrompt into a renderable image
// reference. Generate never fails from the caller's point of view: every
// error inside the pipeline degrades to the placeholder, so rendering a
// presentation can proceed with partial content.
type ImageGenerationService struct {
	provider   providers.ImageProvider
	storage    *supabase.StorageClient
	userID     string
	httpClient *http.Client
}

func NewImageGenerationService(provider providers.ImageProvider, storage *supabase.StorageClient, userID string) *ImageGenerationService {
	return &ImageGenerationService{
		provider: provider,
		storage:  storage,
		userID:   userID,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Generate resolves the prompt to a placeholder, a passthrough URL, or a
// stored asset. Stock providers get the bare subject prompt; generative
// providers get the theme-augmented one.
func (s *ImageGenerationService) Generate(ctx context.Context, prompt models.ImagePrompt) models.GeneratedImage {
	if s.provider == nil {
		log.Println("No image provider configured. Using placeholder image.")
		return models.PlaceholderImage{}
	}

	promptText := prompt.ImagePromptText(!s.provider.Stock())
	log.Printf("Generating image via %s for %q", s.provider.Name(), promptText)

	result, err := s.generate(ctx, prompt, promptText)
	if err != nil {
		log.Printf("Error generating image: %v", err)
		return models.PlaceholderImage{}
	}
	return result
}

func (s *ImageGenerationService) generate(ctx context.Context, prompt models.ImagePrompt, promptText string) (models.GeneratedImage, error) {
	out, err := s.provider.Generate(ctx, promptText)
	if err != nil {
		return nil, err
	}

	if s.provider.Stock() {
		if out.URL == "" {
			return nil, ErrNoImage
		}
		return models.PassthroughImage{URL: out.URL}, nil
	}

	var data []byte
	switch {
	case out.FileRef != "" && fileExists(out.FileRef):
		// Legacy adapters may still land content on the scratch filesystem.
		data, err = os.ReadFile(out.FileRef)
		if err != nil {
			return nil, fmt.Errorf("failed to read scratch file: %w", err)
		}
	case isAbsoluteURL(out.FileRef):
		return models.PassthroughImage{URL: out.FileRef}, nil
	case isAbsoluteURL(out.URL):
		return models.PassthroughImage{URL: out.URL}, nil
	case len(out.Data) > 0:
		data = out.Data
	case out.SourceURL != "":
		data, err = s.download(ctx, out.SourceURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrNoImage
	}

	return s.persist(ctx, prompt, data)
}

// persist stores the bytes under a fresh user-namespaced key and signs it.
func (s *ImageGenerationService) persist(ctx context.Context, prompt models.ImagePrompt, data []byte) (models.GeneratedImage, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}

	filename := uuid.New().String() + ".jpg"
	key := supabase.BuildUserKey(s.userID, supabase.KindImages, filename)

	if _, err := s.storage.Store(ctx, key, data, "image/jpeg"); err != nil {
		return nil, err
	}

	signedURL, err := s.storage.SignedURL(ctx, key, signedURLExpirySeconds)
	if err != nil {
		return nil, err
	}

	return models.StoredImage{
		SignedURL:   signedURL,
		UserID:      s.userID,
		Prompt:      prompt.Prompt,
		ThemePrompt: prompt.ThemePrompt,
	}, nil
}

func (s *ImageGenerationService) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch generated image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch generated image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generated image: %w", err)
	}
	return data, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
