package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/scrim-bot/config"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// ErrMissingSecret is returned when no JWT secret is configured.
var ErrMissingSecret = errors.New("jwt secret is required")

// Module owns staff authentication for the admin HTTP API.
type Module struct {
	provider authjwt.Provider
	limiter  *authhandlers.IPRateLimiter
	origins  []string
	logger   *slog.Logger
}

// NewModule creates the auth module from cfg.
func NewModule(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Module, error) {
	if cfg.JWT.Secret == "" {
		return nil, ErrMissingSecret
	}

	logger.InfoContext(ctx, "Initializing auth module")

	return &Module{
		provider: authjwt.NewProvider(cfg.JWT.Secret),
		limiter:  authhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst),
		origins:  cfg.HTTP.AllowedOrigins,
		logger:   logger,
	}, nil
}

// Provider returns the token provider, used by scrimctl to mint staff tokens.
func (m *Module) Provider() authjwt.Provider {
	return m.provider
}

// Protect installs the shared API middleware on r and requires at least role.
func (m *Module) Protect(r chi.Router, role authdomain.Role) {
	r.Use(authhandlers.CORSMiddleware(m.origins))
	r.Use(authhandlers.RateLimitMiddleware(m.limiter))
	r.Use(authhandlers.RequireStaff(m.provider, role))
}

// Require returns a middleware for routes that need a stronger role than the
// group installed by Protect.
func (m *Module) Require(role authdomain.Role) func(http.Handler) http.Handler {
	return authhandlers.RequireStaff(m.provider, role)
}
