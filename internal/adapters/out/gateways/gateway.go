// Package gateways contains outbound adapters for the external notification
// providers: transactional email, SMS, and mobile push. Every gateway
// supports a mock mode that logs the send and succeeds without calling the
// provider, for local development and test environments.
package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// httpDoer is the subset of http.Client the gateways need.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// postJSON sends the payload to the provider endpoint and fails on any
// non-2xx response.
func postJSON(ctx context.Context, client httpDoer, endpoint, apiKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		providerMessage, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, providerMessage)
	}

	return nil
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
