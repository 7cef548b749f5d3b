// Package app provides the application context and dependency management
// for the partnermap CLI: configuration, logging and a lazily built client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/partnermap"
	"github.com/agentstation/partnermap/internal/cmd/application"
	"github.com/agentstation/partnermap/internal/store"
	"github.com/agentstation/partnermap/pkg/errors"
	"github.com/agentstation/partnermap/pkg/reconcile"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the partnermap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client partnermap.Client
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations and can be replaced
// with functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the display format selected with --format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether -q was given.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// NoColor reports whether colors are disabled by flag or NO_COLOR.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Destination returns the configured output location.
func (a *App) Destination() application.Destination {
	return application.Destination{
		Path:   a.config.Output,
		Format: a.config.OutputFormat,
		Bucket: a.config.S3Bucket,
	}
}

// Client returns a partnermap client built from the configuration. Without
// opts the same instance is returned on every call; with opts a new
// client is built with opts applied after the configured ones.
func (a *App) Client(opts ...partnermap.Option) (partnermap.Client, error) {
	if len(opts) > 0 {
		base, err := a.clientOptions()
		if err != nil {
			return nil, err
		}
		pm, err := partnermap.New(append(base, opts...)...)
		if err != nil {
			return nil, errors.WrapResource("create", "client", "with custom options", err)
		}
		return pm, nil
	}

	a.mu.RLock()
	if a.client != nil {
		pm := a.client
		a.mu.RUnlock()
		return pm, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	base, err := a.clientOptions()
	if err != nil {
		return nil, err
	}
	pm, err := partnermap.New(base...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = pm
	return pm, nil
}

// Shutdown releases the cached client.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.client = nil
	return nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() ([]partnermap.Option, error) {
	mode, err := reconcile.ParseKeyMode(a.config.Mode)
	if err != nil {
		return nil, err
	}

	opts := []partnermap.Option{
		partnermap.WithKeyMode(mode),
		partnermap.WithPartnersEndpoint(a.config.PartnersURL, a.config.PartnersSort),
		partnermap.WithSolutionsEndpoint(a.config.SolutionsURL, a.config.SolutionsSort),
		partnermap.WithPageSize(a.config.PageSize),
	}

	if a.config.Timeout > 0 {
		opts = append(opts, partnermap.WithHTTPTimeout(a.config.Timeout))
	}

	headers := map[string]string{}
	if a.config.UserAgent != "" {
		headers["User-Agent"] = a.config.UserAgent
	}
	if a.config.Referer != "" {
		headers["Referer"] = a.config.Referer
	}
	if len(headers) > 0 {
		opts = append(opts, partnermap.WithHeaders(headers))
	}

	if a.config.S3.Configured() {
		objects, err := store.NewMinioStore(a.config.S3)
		if err != nil {
			return nil, err
		}
		opts = append(opts, partnermap.WithObjectStore(objects))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(pm partnermap.Client) Option {
	return func(a *App) error {
		a.client = pm
		return nil
	}
}
