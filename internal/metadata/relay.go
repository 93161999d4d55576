package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RelaySource is the best-effort secondary stage: it fetches the raw document
// through a public CORS pass-through service and extracts meta tags from the
// returned HTML itself. The relay wraps the document in a JSON envelope with
// the page text under "contents" (allorigins.win format).
type RelaySource struct {
	url    string
	client *http.Client
}

// NewRelaySource creates a relay source issuing GETs against relayURL with
// the target percent-encoded as the url query parameter.
func NewRelaySource(relayURL string, timeout time.Duration) *RelaySource {
	return &RelaySource{
		url:    relayURL,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *RelaySource) Name() string { return "relay" }

type relayEnvelope struct {
	Contents string `json:"contents"`
}

func (s *RelaySource) Resolve(ctx context.Context, target string) (Metadata, error) {
	if s.url == "" {
		return Metadata{}, ErrUnconfigured
	}

	sep := "?"
	if strings.Contains(s.url, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.url+sep+"url="+url.QueryEscape(target), nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Metadata{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Metadata{}, fmt.Errorf("relay returned %d", resp.StatusCode)
	}

	var envelope relayEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Metadata{}, fmt.Errorf("decode relay envelope: %w", err)
	}
	if envelope.Contents == "" {
		return Metadata{}, fmt.Errorf("relay envelope missing contents")
	}

	// Extract never fails; malformed HTML just yields empty fields.
	return Extract(strings.NewReader(envelope.Contents)), nil
}
