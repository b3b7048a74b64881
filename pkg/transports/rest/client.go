package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/adcflow/adcflow/pkg/conftree"
	"github.com/adcflow/adcflow/pkg/engine"
	"github.com/adcflow/adcflow/pkg/telemetry"
)

// Client implements engine.Transport against the device's HTTP API. A
// session cookie obtained at login authenticates subsequent requests.
// Every operation is a single attempt; retry policy belongs to callers.
type Client struct {
	config *Config
	http   *http.Client
	logger *telemetry.Logger

	mu       sync.RWMutex
	loggedIn bool
}

var _ engine.Transport = (*Client)(nil)

// NewClient creates a new device API client.
func NewClient(config *Config, logger *telemetry.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = telemetry.NopLogger()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if config.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
	}

	return &Client{
		config: config,
		http: &http.Client{
			Jar:       jar,
			Timeout:   config.RequestTimeout,
			Transport: transport,
		},
		logger: logger.NewComponentLogger("rest"),
	}, nil
}

// Connect authenticates and establishes the session cookie.
func (c *Client) Connect(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"username": c.config.Username,
		"password": c.config.Password,
	})
	if err != nil {
		return &TransportError{Op: "login", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.baseURL()+c.config.LoginPath, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: "login", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{
			Op:         "login",
			StatusCode: resp.StatusCode,
			Body:       readBody(resp.Body),
		}
	}

	c.mu.Lock()
	c.loggedIn = true
	c.mu.Unlock()

	c.logger.WithField("host", c.config.Host).Debug("session established")
	return nil
}

// IsConnected reports whether a session has been established.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loggedIn
}

// Close ends the session. Logout failures are ignored; the session cookie
// simply expires server-side.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	c.loggedIn = false
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.config.baseURL()+c.config.LoginPath, nil)
	if err != nil {
		return nil
	}
	if resp, err := c.http.Do(req); err == nil {
		_ = resp.Body.Close()
	}
	return nil
}

// Write sets the configuration value at path.
func (c *Client) Write(ctx context.Context, path conftree.Path, value conftree.TypedValue) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(value)
	if err != nil {
		return &TransportError{Op: "write", Path: path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.nodeURL(path), bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: "write", Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "write", Path: path, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		return &TransportError{
			Op:         "write",
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       readBody(resp.Body),
		}
	}
}

// Read fetches the current value or existence status at path. A 404 is not
// an error: the node simply does not exist.
func (c *Client) Read(ctx context.Context, path conftree.Path) (*engine.Snapshot, error) {
	if err := c.ensureSession(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nodeURL(path), nil)
	if err != nil {
		return nil, &TransportError{Op: "read", Path: path, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "read", Path: path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &engine.Snapshot{Path: path, Exists: false}, nil
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &TransportError{Op: "read", Path: path, Err: err}
		}
		return &engine.Snapshot{Path: path, Exists: true, Value: raw}, nil
	default:
		return nil, &TransportError{
			Op:         "read",
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       readBody(resp.Body),
		}
	}
}

// Delete removes the configuration node at path. Deleting a node that is
// already gone succeeds.
func (c *Client) Delete(ctx context.Context, path conftree.Path) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.nodeURL(path), nil)
	if err != nil {
		return &TransportError{Op: "delete", Path: path, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "delete", Path: path, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return &TransportError{
			Op:         "delete",
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       readBody(resp.Body),
		}
	}
}

// ensureSession logs in on first use.
func (c *Client) ensureSession(ctx context.Context) error {
	if c.IsConnected() {
		return nil
	}
	return c.Connect(ctx)
}

// nodeURL builds the request URL for a configuration path, escaping each
// segment individually.
func (c *Client) nodeURL(path conftree.Path) string {
	segments := path.Segments()
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.config.baseURL() + c.config.APIPrefix + "/" + strings.Join(escaped, "/")
}

// readBody drains a response body for error reporting, truncated to keep
// error messages bounded.
func readBody(r io.Reader) string {
	const maxBody = 512
	b, err := io.ReadAll(io.LimitReader(r, maxBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
