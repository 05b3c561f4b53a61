package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/roomcast-server/internal/config"
	"github.com/vovakirdan/roomcast-server/internal/core"
	transporthttp "github.com/vovakirdan/roomcast-server/internal/transport/http"
	"github.com/vovakirdan/roomcast-server/internal/validate"
	"github.com/vovakirdan/roomcast-server/internal/validate/httpcheck"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	tlsCert         string
	tlsKey          string
	log             *zerolog.Logger
}

// New constructs the application with provided configuration and the
// loaded room inventory.
func New(cfg config.Config, rooms map[string]*core.Room, logger *zerolog.Logger) *App {
	var checker validate.Checker = httpcheck.New(cfg.FetchTimeout)
	registry := core.NewRegistry(checker, logger)
	server := transporthttp.NewServer(registry, rooms, cfg, logger)

	a := &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}
	if cfg.TLSEnabled() {
		a.tlsCert = cfg.TLSCert
		a.tlsKey = cfg.TLSKey
	}
	return a
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if a.tlsCert != "" {
			err = a.server.ListenAndServeTLS(a.tlsCert, a.tlsKey)
		} else {
			err = a.server.ListenAndServe()
		}
		if err != nil && err != stdhttp.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
