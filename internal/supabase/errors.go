package supabase

import "fmt"

// ConfigError is returned from NewStorageClient when a required setting is
// missing. It is raised before any network call and is fatal: callers must
// not fall back to a partially configured client.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("supabase storage is not configured: missing %s", e.Missing)
}

// WriteError is an upload that the backend rejected.
type WriteError struct {
	Key    string
	Status int
	Body   string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("supabase upload of %s failed (%d): %s", e.Key, e.Status, e.Body)
}

// SignError is a signed-URL request that failed or returned no usable URL.
type SignError struct {
	Key    string
	Status int
	Body   string
}

func (e *SignError) Error() string {
	return fmt.Sprintf("supabase sign of %s failed (%d): %s", e.Key, e.Status, e.Body)
}

// DeleteError is a delete that the backend rejected.
type DeleteError struct {
	Key    string
	Status int
	Body   string
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("supabase delete of %s failed (%d): %s", e.Key, e.Status, e.Body)
}
