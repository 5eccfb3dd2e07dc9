package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/diogo/geminichat/internal/config"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// Generator is the adapter contract the chat view depends on
type Generator interface {
	// GenerateContent sends one prompt and returns the full answer text.
	// Failures match apierrors.ErrGenerationFailed.
	GenerateContent(ctx context.Context, prompt string) (string, error)
	ModelName() string
	Close()
}

// clientOptions holds settings shared by both backends
type clientOptions struct {
	model    models.Model
	endpoint string
	timeout  time.Duration
	logger   *slog.Logger
	models   modelsClient // sdk backend only, injected by tests
}

// ClientOption is a function that configures a client
type ClientOption func(*clientOptions)

// WithModel sets the model for the client
func WithModel(model models.Model) ClientOption {
	return func(o *clientOptions) {
		o.model = model
	}
}

// WithEndpoint overrides the API base URL (REST backend)
func WithEndpoint(endpoint string) ClientOption {
	return func(o *clientOptions) {
		o.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []ClientOption) clientOptions {
	o := clientOptions{
		model:    models.DefaultModel,
		endpoint: models.EndpointBase,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// RESTClient calls the generateContent endpoint directly over HTTPS
type RESTClient struct {
	httpClient tls_client.HttpClient
	apiKey     string
	model      models.Model
	endpoint   string
	logger     *slog.Logger
	mu         sync.RWMutex
	closed     bool
}

// NewRESTClient creates a new RESTClient
func NewRESTClient(apiKey string, opts ...ClientOption) (*RESTClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	o := buildOptions(opts)

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(o.timeout / time.Second)),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &RESTClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		model:      o.model,
		endpoint:   o.endpoint,
		logger:     o.logger,
	}, nil
}

// ModelName returns the model the client generates with
func (c *RESTClient) ModelName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model.Name
}

// SetModel changes the model used for later requests
func (c *RESTClient) SetModel(model models.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Endpoint returns the full generateContent URL for the current model
func (c *RESTClient) Endpoint() string {
	return c.endpoint + fmt.Sprintf(models.GenerateContentPath, c.ModelName())
}

// IsClosed returns whether the client is closed
func (c *RESTClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close releases idle connections; later calls fail
func (c *RESTClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// New builds the generator selected by cfg.Backend
func New(ctx context.Context, cfg config.Config, apiKey string, opts ...ClientOption) (Generator, error) {
	base := []ClientOption{
		WithModel(models.ModelFromName(cfg.Model)),
		WithTimeout(cfg.Timeout()),
	}
	if cfg.Endpoint != "" {
		base = append(base, WithEndpoint(cfg.Endpoint))
	}
	opts = append(base, opts...)

	switch cfg.Backend {
	case config.BackendREST, "":
		return NewRESTClient(apiKey, opts...)
	case config.BackendSDK:
		return NewSDKClient(ctx, apiKey, opts...)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

var (
	_ Generator = (*RESTClient)(nil)
	_ Generator = (*SDKClient)(nil)
)
