package server

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/handler"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout is how long in-flight requests may run after a stop signal.
const shutdownTimeout = 15 * time.Second

type server struct {
	servers []Server
	logger  *logger.Logger
}

// NewServer creates a transport server for every handler present in
// handlers and returns them behind a single [Server].
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{logger: logger}

	if handlers.HTTP != nil && cfg.HTTPAddress != "" {
		s.servers = append(s.servers, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if handlers.GRPC != nil && cfg.GRPCAddress != "" {
		s.servers = append(s.servers, newGRPCServer(handlers.GRPC, cfg, logger))
	}

	if len(s.servers) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

// RunServer runs all servers until ctx is cancelled or any of them fails,
// then shuts the rest down gracefully.
func (s *server) RunServer(ctx context.Context) error {
	if len(s.servers) == 0 {
		return errNoServersAreCreated
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range s.servers {
		g.Go(func() error {
			return srv.RunServer(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		return s.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error
	for _, srv := range s.servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
