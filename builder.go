package sessionkit

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ledgerfront/sessionkit/internal/wire"
	"github.com/ledgerfront/sessionkit/tokenstore"
)

// Builder assembles a [Session]. A Builder is single-use: Build returns an
// error on reuse so two sessions can never share refresh state by accident.
type Builder struct {
	config Config

	store      tokenstore.Store
	httpClient *http.Client
	logger     *zerolog.Logger
	sink       EventSink

	built bool
}

// New returns a Builder preloaded with defaults. At minimum a base URL
// must be supplied before Build.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend base URL, keeping the default paths.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.Endpoints.BaseURL = baseURL
	return b
}

// WithStore sets the token store. Defaults to an in-process
// [tokenstore.Memory].
func (b *Builder) WithStore(store tokenstore.Store) *Builder {
	b.store = store
	return b
}

// WithHTTPClient sets the HTTP client used for every flow. Timeout and
// cancellation policy belong to this client and the caller's contexts;
// the Session adds none of its own.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithEventSink sets the sink receiving session events and enables event
// dispatch.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.sink = sink
	b.config.Events.Enabled = true
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and returns the Session.
func (b *Builder) Build() (*Session, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		store = tokenstore.NewMemory()
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTP.Timeout}
	}

	api, err := wire.NewClient(
		cfg.Endpoints.BaseURL,
		httpClient,
		cfg.HTTP.UserAgent,
		cfg.HTTP.RequestIDHeader,
		cfg.HTTP.MaxResponseSize,
	)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}

	s := &Session{
		cfg:     cfg,
		store:   store,
		api:     api,
		log:     logger,
		metrics: NewMetrics(cfg.Metrics),
		events:  newEventDispatcher(cfg.Events, b.sink),
	}

	b.built = true
	return s, nil
}
