package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"options-journal/internal/errors"
)

// HTTPVIXProvider fetches the volatility index from a configured JSON
// endpoint returning {"value": <number>, "timestamp": <RFC3339>}.
type HTTPVIXProvider struct {
	url    string
	client *http.Client
}

// NewHTTPVIXProvider creates a provider for the given endpoint. An empty URL
// yields a provider that always reports no data.
func NewHTTPVIXProvider(url string) *HTTPVIXProvider {
	return &HTTPVIXProvider{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Current fetches the current index value. A single request per call, no
// retries; the caller treats any error as an absent reading.
func (p *HTTPVIXProvider) Current(ctx context.Context) (*IndexValue, error) {
	if p.url == "" {
		return nil, errors.NewCollaboratorError("vix", "fetch", fmt.Errorf("no source configured"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, errors.NewCollaboratorError("vix", "fetch", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewCollaboratorError("vix", "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewCollaboratorError("vix", "fetch", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var value IndexValue
	if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
		return nil, errors.NewCollaboratorError("vix", "decode", err)
	}
	if value.Timestamp.IsZero() {
		value.Timestamp = time.Now()
	}

	return &value, nil
}
