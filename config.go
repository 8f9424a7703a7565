package sessionkit

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by sessionkit APIs.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Config struct {
	Endpoints EndpointConfig
	Refresh   RefreshConfig
	HTTP      HTTPConfig
	Events    EventConfig
	Metrics   MetricsConfig
}

/*
====================================
ENDPOINT CONFIG
====================================
*/

// EndpointConfig locates the backend auth endpoints. Paths are joined onto
// BaseURL verbatim.
type EndpointConfig struct {
	BaseURL      string
	LoginPath    string
	RegisterPath string
	RefreshPath  string
	LogoutPath   string
}

/*
====================================
REFRESH CONFIG
====================================
*/

// RefreshConfig controls expiry evaluation and the refresh transport
// contract.
type RefreshConfig struct {
	// Threshold is subtracted from the access token's exp claim when
	// deciding whether a refresh is due. Any uncertainty (missing token,
	// undecodable claims, no exp) also counts as "expiring".
	Threshold time.Duration
	// HeaderName carries the refresh token on the refresh request. The
	// backend contract uses a dedicated header, not a body field.
	HeaderName string
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig tunes the outbound HTTP behavior shared by all flows.
type HTTPConfig struct {
	Timeout         time.Duration
	UserAgent       string
	RequestIDHeader string
	MaxResponseSize int64
}

/*
====================================
EVENTS CONFIG
====================================
*/

// EventConfig controls the async session event dispatcher.
type EventConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking the emitting flow when
	// the buffer is full. Dropped events are counted, never logged.
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process counters exposed through
// [Session.MetricsSnapshot].
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Endpoints: EndpointConfig{
			LoginPath:    "/auth/login",
			RegisterPath: "/auth/register",
			RefreshPath:  "/auth/refresh",
			LogoutPath:   "/auth/logout",
		},
		Refresh: RefreshConfig{
			Threshold:  60 * time.Second,
			HeaderName: "X-Refresh-Token",
		},
		HTTP: HTTPConfig{
			Timeout:         15 * time.Second,
			UserAgent:       "sessionkit",
			RequestIDHeader: "X-Request-ID",
			MaxResponseSize: 1 << 20,
		},
		Events: EventConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

// Validate checks the configuration for internal consistency. Build calls
// it; it is exported so callers can vet a Config before constructing.
func (c Config) Validate() error {
	base := strings.TrimSpace(c.Endpoints.BaseURL)
	if base == "" {
		return errors.New("endpoints: base URL required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("endpoints: base URL must be absolute")
	}
	for _, p := range []string{
		c.Endpoints.LoginPath,
		c.Endpoints.RegisterPath,
		c.Endpoints.RefreshPath,
		c.Endpoints.LogoutPath,
	} {
		if !strings.HasPrefix(p, "/") {
			return errors.New("endpoints: paths must start with /")
		}
	}
	if c.Refresh.Threshold < 0 {
		return errors.New("refresh: threshold must be >= 0")
	}
	if c.Refresh.HeaderName == "" {
		return errors.New("refresh: header name required")
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("http: timeout must be >= 0")
	}
	if c.HTTP.MaxResponseSize <= 0 {
		return errors.New("http: max response size must be > 0")
	}
	if c.Events.Enabled && c.Events.BufferSize <= 0 {
		return errors.New("events: buffer size must be > 0 when enabled")
	}
	return nil
}
