package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Run starts the queue, the event router and the HTTP server, and blocks
// until ctx is cancelled or one of them fails.
func (app *App) Run(ctx context.Context) error {
	if err := app.Results.Start(ctx); err != nil {
		return fmt.Errorf("failed to start results queue: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.Router.Run(gctx); err != nil {
			return fmt.Errorf("message router: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-app.Router.Running():
		case <-gctx.Done():
			return nil
		}
		app.Logger.Info("Starting HTTP server", slog.String("addr", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return app.Shutdown()
	})

	return g.Wait()
}
