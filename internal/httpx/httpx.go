// Package httpx is a small JSON-over-HTTP helper shared by the provider
// clients. Non-2xx responses surface as *StatusError so callers can
// branch on specific codes (404 means no route, 429 triggers the relay
// fallback).
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 15 * time.Second

type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// IsStatus reports whether err carries the given HTTP status code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// CallRaw performs the request and returns the raw response body.
func CallRaw(
	ctx context.Context,
	method, endpoint string,
	headers map[string]string,
	body any,
	params map[string]string,
) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, er := json.Marshal(body)
		if er != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", er)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{
		Timeout: defaultTimeout,
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make http call: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: res.StatusCode,
			Body:       bodyBytes,
		}
	}

	return bodyBytes, nil
}

// Call performs the request and decodes the JSON response into T.
func Call[T any](
	ctx context.Context,
	method, endpoint string,
	headers map[string]string,
	body any,
	params map[string]string,
) (T, error) {
	var result T

	bodyBytes, err := CallRaw(ctx, method, endpoint, headers, body, params)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result, nil
}
