package app

import (
	"context"
	"errors"
	"time"
)

const shutdownTimeout = 15 * time.Second

// Shutdown stops accepting HTTP requests and closes the event router.
func (app *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	app.Logger.Info("Shutting down application")

	var errs []error
	if app.server != nil {
		errs = append(errs, app.server.Shutdown(ctx))
	}
	if app.Router != nil {
		errs = append(errs, app.Router.Close())
	}
	return errors.Join(errs...)
}

// Close releases the modules, the event bus and the database.
func (app *App) Close(ctx context.Context) error {
	var errs []error
	if app.Results != nil {
		errs = append(errs, app.Results.Close(ctx))
	}
	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.DB != nil {
		errs = append(errs, app.DB.Close())
	}
	return errors.Join(errs...)
}
