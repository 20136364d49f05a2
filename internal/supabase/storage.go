package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ObjectKind namespaces stored objects below the per-user prefix.
type ObjectKind string

const (
	KindImages  ObjectKind = "images"
	KindUploads ObjectKind = "uploads"
	KindExports ObjectKind = "exports"
	KindFonts   ObjectKind = "fonts"
)

// BuildUserKey composes the storage key for an object owned by a user.
// Keys are namespaced per user so no two users can collide.
func BuildUserKey(userID string, kind ObjectKind, filename string) string {
	return fmt.Sprintf("users/%s/%s/%s", userID, kind, filename)
}

// StorageClient talks to the Supabase Storage REST API. The bucket stays
// private; retrievability is granted through time-limited signed URLs.
type StorageClient struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	switch {
	case supabaseURL == "":
		return nil, &ConfigError{Missing: "SUPABASE_URL"}
	case serviceRoleKey == "":
		return nil, &ConfigError{Missing: "SUPABASE_SERVICE_ROLE_KEY"}
	case bucket == "":
		return nil, &ConfigError{Missing: "SUPABASE_STORAGE_BUCKET"}
	}

	return &StorageClient{
		baseURL:    strings.TrimSuffix(supabaseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceRoleKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (s *StorageClient) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
}

// Store uploads content under key and returns the key. Overwrite by key is
// idempotent on the backend side.
func (s *StorageClient) Store(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	s.setAuthHeaders(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", &WriteError{Key: key, Status: resp.StatusCode, Body: string(body)}
	}

	return key, nil
}

type signRequest struct {
	ExpiresIn int      `json:"expiresIn"`
	Paths     []string `json:"paths"`
}

// signEntry tolerates both field spellings the backend has used across
// versions.
type signEntry struct {
	SignedURLUpper string `json:"signedURL"`
	SignedURLLower string `json:"signedUrl"`
	Path           string `json:"path"`
}

func (e signEntry) signedURL() string {
	if e.SignedURLUpper != "" {
		return e.SignedURLUpper
	}
	return e.SignedURLLower
}

// SignedURL issues a time-limited capability URL for key. The returned URL
// is fully qualified against the storage endpoint.
func (s *StorageClient) SignedURL(ctx context.Context, key string, expiresIn int) (string, error) {
	jsonData, err := json.Marshal(signRequest{ExpiresIn: expiresIn, Paths: []string{key}})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/sign/%s", s.baseURL, s.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	s.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &SignError{Key: key, Status: resp.StatusCode, Body: string(body)}
	}

	var entries []signEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", &SignError{Key: key, Status: resp.StatusCode, Body: string(body)}
	}
	if len(entries) == 0 || entries[0].signedURL() == "" {
		return "", &SignError{Key: key, Status: resp.StatusCode, Body: string(body)}
	}

	return fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", s.baseURL, s.bucket, entries[0].signedURL()), nil
}

// Delete removes the object at key. Unlike Store and SignedURL inside the
// generation flow, delete failures have no fallback and propagate.
func (s *StorageClient) Delete(ctx context.Context, key string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	s.setAuthHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return &DeleteError{Key: key, Status: resp.StatusCode, Body: string(body)}
	}

	return nil
}
