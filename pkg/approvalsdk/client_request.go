package approvalsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxPreview bounds how much of an undecodable body a DecodeError keeps.
const maxPreview = 256

// Do performs an authenticated call against the REST API.
//
// The body is decoded as JSON before the status is inspected, so a non-JSON
// error page yields a DecodeError rather than an APIError. Nothing is sent when
// accessToken is empty.
func (c *SDKClient) Do(ctx context.Context, accessToken string, r Request) (*Response, error) {
	if accessToken == "" {
		return nil, ErrNotAuthenticated
	}

	target, err := c.ResolveURL(r.Path, r.Query)
	if err != nil {
		return nil, err
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Body != nil {
		raw, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &DecodeError{StatusCode: resp.StatusCode, Preview: preview(raw), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data), Body: data}
	}

	return &Response{Status: resp.StatusCode, Data: data, Headers: resp.Header}, nil
}

// ResolveURL joins path to the base URL and merges any query embedded in path
// with extra.
func (c *SDKClient) ResolveURL(path string, extra url.Values) (string, error) {
	rawPath, rawQuery, _ := strings.Cut(path, "?")
	if !strings.HasPrefix(rawPath, "/") {
		rawPath = "/" + rawPath
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("invalid query in path %q: %w", path, err)
	}
	for key, values := range extra {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	target := c.BaseURL + rawPath
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target, nil
}

func errorMessage(data any) string {
	if obj, ok := data.(map[string]any); ok {
		for _, key := range []string{"error", "message"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return "Unknown error"
}

func preview(raw []byte) string {
	if len(raw) > maxPreview {
		raw = raw[:maxPreview]
	}
	return strings.TrimSpace(string(raw))
}
