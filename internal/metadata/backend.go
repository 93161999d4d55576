package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BackendSource is the trusted primary stage: it delegates extraction to a
// server-side service that fetches the URL itself and parses the meta tags.
// A non-error response is used verbatim, even when individual fields are empty.
type BackendSource struct {
	url    string
	client *http.Client
}

// NewBackendSource creates a backend source posting to url. An empty url
// yields a source that always reports ErrUnconfigured.
func NewBackendSource(url string, timeout time.Duration) *BackendSource {
	return &BackendSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *BackendSource) Name() string { return "backend" }

func (s *BackendSource) Resolve(ctx context.Context, target string) (Metadata, error) {
	if s.url == "" {
		return Metadata{}, ErrUnconfigured
	}

	payload, err := json.Marshal(map[string]string{"url": target})
	if err != nil {
		return Metadata{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return Metadata{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Metadata{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Metadata{}, fmt.Errorf("backend returned %d: %s", resp.StatusCode, body)
	}

	var meta Metadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return Metadata{}, fmt.Errorf("decode response: %w", err)
	}
	return meta, nil
}
