package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TokenSource supplies the bearer token for each request. The client never
// stores or refreshes tokens itself.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

type Config struct {
	// ReadTimeout applies to GET requests.
	ReadTimeout time.Duration
	// WriteTimeout applies to POST, PUT, PATCH and DELETE.
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{ReadTimeout: 10 * time.Second, WriteTimeout: 15 * time.Second}
}

// Client talks to the adminhub REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	config  Config
}

func New(baseURL string, tokens TokenSource, cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		config:  cfg,
	}
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	out := *c
	out.http = hc
	return &out
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// response is what do hands back once the status has been checked.
type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (response, error) {
	timeout := c.config.ReadTimeout
	if isWrite(method) {
		timeout = c.config.WriteTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return response{}, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rid := uuid.NewString()
	req.Header.Set("X-Request-ID", rid)
	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return response{}, fmt.Errorf("token: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", rid).Msg("api_request_failed")
		return response{}, mapTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, mapTransportError(err)
	}
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", rid).
		Msg("api_request")

	if resp.StatusCode >= 400 {
		return response{}, decodeAPIError(resp.StatusCode, raw)
	}
	return response{status: resp.StatusCode, header: resp.Header, body: raw}, nil
}

// call runs a JSON request and decodes the reply into out when there is one.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || resp.status == http.StatusNoContent || len(resp.body) == 0 {
		return nil
	}
	if err := jsonDecode(resp.body, out); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

func jsonDecode(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapTransportError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func attachmentName(h http.Header) string {
	_, params, err := mime.ParseMediaType(h.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}
