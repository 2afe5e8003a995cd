package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/exhibitkit/showroom/internal/model"
)

// Transport fetches a bundle by its catalog location. Success or failure
// is binary; a failure carries only its error string.
type Transport interface {
	Fetch(ctx context.Context, location string) (*model.Bundle, error)
}

// HTTPTransport fetches bundle documents over HTTP
type HTTPTransport struct {
	base   string
	client *http.Client
}

// NewHTTPTransport creates a transport rooted at the given base URL.
// Bundle locations from the catalog are resolved relative to it.
func NewHTTPTransport(base string) *HTTPTransport {
	return &HTTPTransport{
		base: base,
		// No timeout: a stalled transfer suspends its own task
		// indefinitely without blocking the rest of the loop.
		client: &http.Client{},
	}
}

// Fetch retrieves and decodes a bundle document
func (t *HTTPTransport) Fetch(ctx context.Context, location string) (*model.Bundle, error) {
	u, err := url.JoinPath(t.base, location)
	if err != nil {
		return nil, fmt.Errorf("bundle url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("bundle request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bundle fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bundle fetch: unexpected status %d", resp.StatusCode)
	}

	var bundle model.Bundle
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("bundle decode: %w", err)
	}
	return &bundle, nil
}

var _ Transport = (*HTTPTransport)(nil)
