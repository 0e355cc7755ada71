package scholarship

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
)

const requestIDHeader = "X-Request-Id"

// envelope is the API's response convention; list endpoints add meta.
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Meta    *domain.PageMeta `json:"meta"`
}

// doJSON performs one authorized JSON round trip through the resilience
// executor and decodes the envelope's data into out. The token is resolved
// before any network activity: a missing or expired credential
// short-circuits the call entirely.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any, operation string) (*domain.PageMeta, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var body []byte
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s request: %w", operation, err)
		}
	}

	var meta *domain.PageMeta
	err = c.exec.Execute(ctx, operation, func(ctx context.Context) error {
		req, err := c.newRequest(ctx, method, path, query, token)
		if err != nil {
			return err
		}
		if body != nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
			req.ContentLength = int64(len(body))
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		env, pageMeta, err := c.roundTrip(req, operation)
		if err != nil {
			return err
		}
		if out != nil && len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, out); err != nil {
				return fmt.Errorf("decode %s response: %w", operation, err)
			}
		}
		meta = pageMeta
		return nil
	}, classifyAPIError)
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, token string) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

func (c *Client) roundTrip(req *http.Request, operation string) (*envelope, *domain.PageMeta, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, domain.WrapError(domain.ErrTemporary, operation, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api_request",
		"request_id", req.Header.Get(requestIDHeader),
		"operation", operation,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	if resp.StatusCode >= 300 {
		return nil, nil, newStatusError(operation, resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, nil, fmt.Errorf("decode %s envelope: %w", operation, err)
	}
	if !env.Success {
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = "permintaan ditolak oleh server"
		}
		return nil, nil, domain.WrapError(domain.ErrServer, operation, fmt.Errorf("%s", message))
	}
	return &env, env.Meta, nil
}

// doBinary performs one authorized round trip that returns a raw blob
// instead of the JSON envelope.
func (c *Client) doBinary(ctx context.Context, path string, query url.Values, accept, operation string) ([]byte, string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, "", err
	}

	var data []byte
	var contentType string
	err = c.exec.Execute(ctx, operation, func(ctx context.Context) error {
		req, err := c.newRequest(ctx, http.MethodGet, path, query, token)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", accept)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return domain.WrapError(domain.ErrTemporary, operation, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			return newStatusError(operation, resp)
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read %s response: %w", operation, err)
		}
		data = raw
		contentType = resp.Header.Get("Content-Type")
		return nil
	}, classifyAPIError)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}
