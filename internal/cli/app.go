package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/ShinyNito/FunkDBS/dbs"
	"github.com/ShinyNito/FunkDBS/internal/config"
	"github.com/ShinyNito/FunkDBS/internal/credentials"
)

type contextKey string

const appKey contextKey = "app"

// GlobalFlags holds values for global CLI flags.
type GlobalFlags struct {
	ConfigPath  string
	Environment string
	DealerID    string
	ClientID    string
	Scope       string
	JQ          string
	Verbose     int // 0=warnings, 1=info, 2=debug with redacted requests
}

// App holds the shared state for one command invocation.
type App struct {
	Config  *config.Config
	Secrets *credentials.Store
	Logger  *slog.Logger
	Flags   GlobalFlags

	once   sync.Once
	client *dbs.Client
	err    error
}

// NewApp creates an App for cfg. Log output goes to logw.
func NewApp(cfg *config.Config, flags GlobalFlags, logw io.Writer) *App {
	level := slog.LevelWarn
	switch {
	case flags.Verbose >= 2:
		level = slog.LevelDebug
	case flags.Verbose == 1:
		level = slog.LevelInfo
	}
	return &App{
		Config:  cfg,
		Secrets: credentials.NewStore(),
		Logger:  slog.New(slog.NewTextHandler(logw, &slog.HandlerOptions{Level: level})),
		Flags:   flags,
	}
}

// Client builds the DBS client on first use. Commands that never talk to the
// service (config, secret) do not need a client secret.
func (a *App) Client() (*dbs.Client, error) {
	a.once.Do(func() {
		a.client, a.err = a.newClient()
	})
	return a.client, a.err
}

func (a *App) newClient() (*dbs.Client, error) {
	env, err := a.Environment()
	if err != nil {
		return nil, err
	}
	secret, err := a.clientSecret(env)
	if err != nil {
		return nil, err
	}

	cfg := dbs.Config{
		Environment:  env,
		DealerID:     a.Config.DealerID,
		ClientID:     a.Config.ClientID,
		ClientSecret: secret,
		Scope:        a.Config.Scope,
		TokenURL:     a.Config.TokenURL,
		APIBaseURL:   a.Config.APIBaseURL,
		HTTPClient:   &http.Client{Timeout: a.Config.Timeout},
		Logger:       a.Logger,
	}
	client, err := dbs.New(cfg)
	if err != nil {
		return nil, usageError(err.Error(), "Check dealer_id and client_id in "+config.DefaultPath())
	}
	return client, nil
}

// Environment returns the configured environment in canonical form.
func (a *App) Environment() (dbs.Environment, error) {
	env, err := dbs.ParseEnvironment(a.Config.Environment)
	if err != nil {
		return "", usageError(err.Error(), "Use --env prod, cert or qual")
	}
	return env, nil
}

// clientSecret resolves the secret from config/env first, then the keyring.
func (a *App) clientSecret(env dbs.Environment) (string, error) {
	if a.Config.ClientSecret != "" {
		return a.Config.ClientSecret, nil
	}
	if a.Config.ClientID == "" {
		return "", usageError("client id is required", "Set DBS_CLIENT_ID or pass --client-id")
	}

	secret, err := a.Secrets.Load(env.String(), a.Config.ClientID)
	switch {
	case err == nil:
		a.Config.Sources["client_secret"] = "keyring"
		return secret, nil
	case errors.Is(err, credentials.ErrNotFound), errors.Is(err, credentials.ErrDisabled):
		return "", usageError("client secret is required", "Set "+config.EnvClientSecret+" or run: dbsfiles secret set")
	default:
		return "", err
	}
}

// WithApp stores app in ctx.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey, app)
}

// FromContext returns the App stored in ctx, or nil.
func FromContext(ctx context.Context) *App {
	if ctx == nil {
		return nil
	}
	app, _ := ctx.Value(appKey).(*App)
	return app
}
