package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultHTTPTimeout = 20 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// apiError is a non-2xx answer from a third-party REST API.
type apiError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.StatusCode, e.Message)
}

// doJSON sends payload (when non-nil) as JSON and decodes a 2xx body into out
// (when non-nil). Error bodies go through errorMessage to pull out the
// provider's message; the raw body is used when it returns "".
func doJSON(ctx context.Context, client *http.Client, service, method, url string, headers map[string]string, payload, out any, errorMessage func([]byte) string) error {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", service, err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create %s API request: %w", service, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s API: %w", service, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s API response: %w", service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := ""
		if errorMessage != nil {
			message = errorMessage(bodyBytes)
		}
		if message == "" {
			message = string(bodyBytes)
		}
		return &apiError{Service: service, StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil || len(bodyBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to parse %s API response: %w", service, err)
	}
	return nil
}
