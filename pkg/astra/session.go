package astra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const (
	// DefaultKeyspace is the keyspace provisioned with every new database.
	DefaultKeyspace = "default_keyspace"
	// DefaultAPIPath is the Data API prefix under the database endpoint.
	DefaultAPIPath = "api/json/v1"
	tokenHeader    = "Token"
)

// ErrSessionClosed is returned when a closed session is used.
var ErrSessionClosed = errors.New("astra: session closed")

// Session is a short-lived connection to one database.
type Session interface {
	ListCollections(ctx context.Context) ([]string, error)
	Close() error
}

// SessionFactory opens sessions for a set of connection parameters.
type SessionFactory interface {
	Open(endpoint, token string) (Session, error)
}

// ClientOption configures the HTTP-backed session factory.
type ClientOption func(*Client)

// WithKeyspace overrides the keyspace queried by ListCollections.
func WithKeyspace(keyspace string) ClientOption {
	return func(c *Client) {
		if ks := strings.TrimSpace(keyspace); ks != "" {
			c.keyspace = ks
		}
	}
}

// WithAPIPath overrides the Data API path prefix.
func WithAPIPath(path string) ClientOption {
	return func(c *Client) {
		if p := strings.Trim(strings.TrimSpace(path), "/"); p != "" {
			c.apiPath = p
		}
	}
}

// WithTransport sets the base transport cloned for each session. Tests use it
// to talk to httptest servers.
func WithTransport(rt *http.Transport) ClientOption {
	return func(c *Client) {
		if rt != nil {
			c.transport = rt
		}
	}
}

// Client creates HTTP sessions against the Data API.
type Client struct {
	keyspace  string
	apiPath   string
	transport *http.Transport
}

// NewClient returns a session factory with the default keyspace and path.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		keyspace:  DefaultKeyspace,
		apiPath:   DefaultAPIPath,
		transport: http.DefaultTransport.(*http.Transport),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Open implements SessionFactory. Every session owns a private transport so
// Close releases only its own connections.
func (c *Client) Open(endpoint, token string) (Session, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, errors.New("astra: endpoint is required")
	}
	if token == "" {
		return nil, errors.New("astra: token is required")
	}
	transport := c.transport.Clone()
	return &httpSession{
		url:       endpoint + "/" + c.apiPath + "/" + c.keyspace,
		token:     token,
		transport: transport,
		client:    &http.Client{Transport: transport},
	}, nil
}

type httpSession struct {
	url       string
	token     string
	transport *http.Transport
	client    *http.Client

	mu     sync.Mutex
	closed bool
}

type commandResponse struct {
	Status struct {
		Collections []json.RawMessage `json:"collections"`
	} `json:"status"`
	Errors []struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	} `json:"errors"`
}

var findCollections = []byte(`{"findCollections":{}}`)

func (s *httpSession) ListCollections(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSessionClosed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(findCollections))
	if err != nil {
		return nil, fmt.Errorf("astra: build request: %w", err)
	}
	req.Header.Set(tokenHeader, s.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("astra: list collections: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("astra: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("astra: list collections: unexpected status %d", resp.StatusCode)
	}

	var payload commandResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("astra: decode response: %w", err)
	}
	if len(payload.Errors) > 0 {
		return nil, fmt.Errorf("astra: list collections: %s", payload.Errors[0].Message)
	}

	names := make([]string, 0, len(payload.Status.Collections))
	for _, raw := range payload.Status.Collections {
		names = append(names, collectionName(raw))
	}
	return names, nil
}

// collectionName accepts both the plain string form and the explained
// {"name": ...} object form of a collection entry.
func collectionName(raw json.RawMessage) string {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}
	var obj struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(raw, &obj)
	return obj.Name
}

func (s *httpSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.transport.CloseIdleConnections()
	return nil
}
