package services_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decky-backend/internal/models"
	"decky-backend/internal/providers"
	"decky-backend/internal/services"
	"decky-backend/internal/supabase"
)

type stubProvider struct {
	name      string
	stock     bool
	out       *providers.Output
	err       error
	gotPrompt string
}

func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) Stock() bool  { return s.stock }
func (s *stubProvider) Generate(_ context.Context, prompt string) (*providers.Output, error) {
	s.gotPrompt = prompt
	return s.out, s.err
}

// storageBackend is an httptest stand-in for the Supabase Storage API that
// counts store and sign calls and captures stored keys and bodies.
type storageBackend struct {
	mu          sync.Mutex
	storeCalls  int
	signCalls   int
	storedKeys  []string
	storedBody  []byte
	failStore   bool
	failSign    bool
	signedToken string
}

func (b *storageBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch {
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/storage/v1/object/assets/"):
			b.storeCalls++
			if b.failStore {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("storage unavailable"))
				return
			}
			key := strings.TrimPrefix(r.URL.Path, "/storage/v1/object/assets/")
			b.storedKeys = append(b.storedKeys, key)
			b.storedBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPost && r.URL.Path == "/storage/v1/object/sign/assets":
			b.signCalls++
			if b.failSign {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("sign unavailable"))
				return
			}
			token := b.signedToken
			if token == "" {
				token = "tok"
			}
			fmt.Fprintf(w, `[{"signedURL":"signed-path?token=%s"}]`, token)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestStorage(t *testing.T, backend *storageBackend) *supabase.StorageClient {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	client, err := supabase.NewStorageClient(server.URL, "service-key", "assets")
	require.NoError(t, err)
	return client
}

func TestGenerate_NoProviderReturnsPlaceholder(t *testing.T) {
	service := services.NewImageGenerationService(nil, nil, "42")

	result := service.Generate(context.Background(), models.ImagePrompt{Prompt: "a red fox"})

	assert.IsType(t, models.PlaceholderImage{}, result)
	assert.Equal(t, models.PlaceholderImagePath, result.ImageURL())
}

func TestGenerate_StockReturnsPassthroughWithBarePrompt(t *testing.T) {
	provider := &stubProvider{
		name:  "pexels",
		stock: true,
		out:   &providers.Output{URL: "https://img/x.jpg"},
	}
	service := services.NewImageGenerationService(provider, nil, "42")

	result := service.Generate(context.Background(), models.ImagePrompt{
		Prompt:      "mountain lake",
		ThemePrompt: "watercolor",
	})

	require.IsType(t, models.PassthroughImage{}, result)
	assert.Equal(t, "https://img/x.jpg", result.ImageURL())
	// Theme language degrades stock search and must not be sent.
	assert.Equal(t, "mountain lake", provider.gotPrompt)
}

func TestGenerate_StockEmptyResultReturnsPlaceholder(t *testing.T) {
	provider := &stubProvider{
		name:  "pexels",
		stock: true,
		err:   fmt.Errorf("pexels returned no photos"),
	}
	service := services.NewImageGenerationService(provider, nil, "42")

	result := service.Generate(context.Background(), models.ImagePrompt{Prompt: "mountain lake"})

	assert.IsType(t, models.PlaceholderImage{}, result)
}

func TestGenerate_GenerativeBytesStoredAndSigned(t *testing.T) {
	imageBytes := []byte("\x89PNG raw image")
	provider := &stubProvider{
		name: "gemini-flash",
		out:  &providers.Output{Data: imageBytes},
	}
	backend := &storageBackend{}
	service := services.NewImageGenerationService(provider, newTestStorage(t, backend), "42")

	result := service.Generate(context.Background(), models.ImagePrompt{
		Prompt:      "a red fox",
		ThemePrompt: "watercolor",
	})

	stored, ok := result.(models.StoredImage)
	require.True(t, ok, "expected StoredImage, got %T", result)

	// Generative providers get the theme-augmented prompt.
	assert.Contains(t, provider.gotPrompt, "a red fox")
	assert.Contains(t, provider.gotPrompt, "watercolor")

	assert.Equal(t, 1, backend.storeCalls)
	assert.Equal(t, 1, backend.signCalls)
	assert.Equal(t, imageBytes, backend.storedBody)

	require.Len(t, backend.storedKeys, 1)
	key := backend.storedKeys[0]
	assert.True(t, strings.HasPrefix(key, "users/42/images/"), "key %q not user-namespaced", key)
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	assert.Contains(t, stored.SignedURL, "/storage/v1/object/sign/assets/")
	assert.Contains(t, stored.SignedURL, "token=tok")
	assert.Equal(t, "42", stored.UserID)
	assert.Equal(t, "a red fox", stored.Prompt)
	assert.Equal(t, "watercolor", stored.ThemePrompt)
}

func TestGenerate_StoreFailureReturnsPlaceholderWithoutSigning(t *testing.T) {
	provider := &stubProvider{
		name: "gemini-flash",
		out:  &providers.Output{Data: []byte("img")},
	}
	backend := &storageBackend{failStore: true}
	service := services.NewImageGenerationService(provider, newTestStorage(t, backend), "42")

	result := service.Generate(context.Background(), models.ImagePrompt{Prompt: "a red fox"})

	assert.IsType(t, models.PlaceholderImage{}, result)
	assert.Equal(t, 1, backend.storeCalls)
	assert.Equal(t, 0, backend.signCalls)
}

func TestGenerate_SignFailureReturnsPlaceholder(t *testing.T) {
	provider := &stubProvider{
		name: "gemini-flash",
		out:  &providers.Output{Data: []byte("img")},
	}
	backend := &storageBackend{failSign: true}
	service := services.NewImageGenerationService(provider, newTestStorage(t, backend), "42")

	result := service.Generate(context.Background(), models.ImagePrompt{Prompt: "a red fox"})

	assert.IsType(t, models.PlaceholderImage{}, result)
	assert.Equal(t, 1, backend.storeCalls)
	assert.Equal(t, 1, backend.signCalls)
}

func TestGenerate_HostedResultDownloadedAndPersisted(t *testing.T) {
	imageBytes := []byte("dall-e result bytes")
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(imageBytes)
	}))
	defer imageServer.Close()

	provider := &stubProvider{
		name: "dall-e-3",
		out:  &providers.Output{SourceURL: imageServer.URL + "/img/1.png"},
	}
	backend := &storageBackend{}
	service := services.NewImageGenerationService(provider, newTestStorage(t, backend), "42")

	result := service.Generate(context.Background(), models.ImagePrompt{Prompt: "a red fox"})

	require.IsType(t, models.StoredImage{}, result)
	assert.Equal(t, 1, backend.storeCalls)
	assert.Equal(t, 1, backend.signCalls)
	assert.Equal(t, imageBytes, backend.storedBody)
}

func TestGenerate_LegacyURLRefPassesThrough(t *testing.T) {
	provider := &stubProvider{
		name: "gemini-flash",
		out:  &providers.Output{FileRef: "https://cdn.example.com/already-durable.jpg"},
	}
	service := services.NewImageGenerationService(provider, nil, "42")

	result := service.Generate(context.Background(), models.ImagePrompt{Prompt: "a red fox"})

	require.IsType(t, models.PassthroughImage{}, result)
	assert.Equal(t, "https://cdn.example.com/already-durable.jpg", result.ImageURL())
}

func TestGenerate_LegacyScratchFilePersisted(t *testing.T) {
	imageBytes := []byte("scratch file image")
	path := filepath.Join(t.TempDir(), "out.jpg")
	require.NoError(t, os.WriteFile(path, imageBytes, 0o644))

	provider := &stubProvider{
		name: "gemini-flash",
		out:  &providers.Output{FileRef: path},
	}
	backend := &storageBackend{}
	service := services.NewImageGenerationService(provider, newTestStorage(t, backend), "42")

	result := service.Generate(context.Background(), models.ImagePrompt{Prompt: "a red fox"})

	require.IsType(t, models.StoredImage{}, result)
	assert.Equal(t, imageBytes, backend.storedBody)
}

func TestGenerate_EmptyOutputReturnsPlaceholder(t *testing.T) {
	provider := &stubProvider{
		name: "gemini-flash",
		out:  &providers.Output{},
	}
	backend := &storageBackend{}
	service := services.NewImageGenerationService(provider, newTestStorage(t, backend), "42")

	result := service.Generate(context.Background(), models.ImagePrompt{Prompt: "a red fox"})

	assert.IsType(t, models.PlaceholderImage{}, result)
	assert.Equal(t, 0, backend.storeCalls)
	assert.Equal(t, 0, backend.signCalls)
}

func TestGenerate_ConcurrentCallsNeverCollideOnKeys(t *testing.T) {
	backend := &storageBackend{}
	storage := newTestStorage(t, backend)

	const perUser = 8
	users := []string{"42", "43"}

	var wg sync.WaitGroup
	for _, user := range users {
		for i := 0; i < perUser; i++ {
			wg.Add(1)
			go func(user string) {
				defer wg.Done()
				provider := &stubProvider{
					name: "gemini-flash",
					out:  &providers.Output{Data: []byte("img")},
				}
				service := services.NewImageGenerationService(provider, storage, user)
				result := service.Generate(context.Background(), models.ImagePrompt{Prompt: "a red fox"})
				assert.IsType(t, models.StoredImage{}, result)
			}(user)
		}
	}
	wg.Wait()

	require.Len(t, backend.storedKeys, perUser*len(users))

	seen := make(map[string]bool)
	for _, key := range backend.storedKeys {
		assert.False(t, seen[key], "key %q reused", key)
		seen[key] = true
		assert.True(t, strings.HasPrefix(key, "users/42/") || strings.HasPrefix(key, "users/43/"))
	}
}
