// Package scholarship implements the Scholarship API gateway over its JSON
// HTTP contract. The server owns all persistent state and enforcement;
// this client mirrors a handful of its rules purely for fail-fast UX.
package scholarship

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bersekolah/beswanadmin/internal/core/ports"
	"github.com/bersekolah/beswanadmin/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	tokens     ports.TokenSource
	httpClient *http.Client
	exec       *resilience.Executor
	logger     *slog.Logger
}

var _ ports.ScholarshipGateway = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithExecutor(exec *resilience.Executor) Option {
	return func(c *Client) { c.exec = exec }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(baseURL string, tokens ports.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.exec == nil {
		c.exec = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return c
}
