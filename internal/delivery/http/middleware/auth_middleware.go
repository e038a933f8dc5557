package middleware

import (
	"context"
	"log/slog"
	"strings"

	"campus/config"
	"campus/internal/delivery/http/response"
	"campus/internal/domain/entity"
	"campus/internal/domain/service"
	"campus/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// principalContextKey is the Echo context key the gate stores the resolved
// principal under.
const principalContextKey = "authPrincipal"

// Principal is the authenticated identity attached to a request after the
// gate has validated the token and confirmed the account is still allowed in.
type Principal struct {
	AccountID uuid.UUID
	Username  string
	Email     string
	Role      entity.Role
	EntityID  *uuid.UUID
}

// AuthMiddleware is the per-request authentication gate. It resolves the
// bearer token into a Principal when it can, and leaves the request
// anonymous when it cannot: a malformed header, a bad token, or a failed
// account check never aborts the request here. Route guards decide whether
// anonymous requests may proceed.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	authUC   usecase.AuthUsecase
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, authUC usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, authUC: authUC, cfg: cfg, logger: logger}
}

// Authenticate inspects the Authorization header once per request. When a
// valid token maps to an account that may still authenticate, the Principal
// is set on the context; in every other case the request continues
// anonymously and the failure is only logged.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			m.logger.Debug("Authorization header is not a bearer token")

			return next(c)
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			m.logger.Debug("Token validation failed", slog.String("error", err.Error()))

			return next(c)
		}

		// The token alone is not enough: the account may have been blocked
		// or deactivated since it was issued. Re-check against live state,
		// bounded so a slow lookup cannot stall the request indefinitely.
		ctx, cancel := context.WithTimeout(c.Request().Context(), m.cfg.CheckAccessTimeoutOrDefault())
		defer cancel()

		account, err := m.authUC.CheckAccess(ctx, claims.AccountID)
		if err != nil {
			m.logger.Debug("Account access check failed",
				slog.String("accountId", claims.AccountID.String()),
				slog.String("error", err.Error()),
			)

			return next(c)
		}

		c.Set(principalContextKey, &Principal{
			AccountID: account.ID,
			Username:  account.Username,
			Email:     account.Email,
			Role:      account.Role,
			EntityID:  account.EntityID,
		})

		return next(c)
	}
}

// PrincipalFrom returns the authenticated principal for the request, if the
// gate established one.
func PrincipalFrom(c echo.Context) (*Principal, bool) {
	principal, ok := c.Get(principalContextKey).(*Principal)

	return principal, ok
}

// RequirePrincipal rejects anonymous requests with 401. It must be used
// AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequirePrincipal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := PrincipalFrom(c); !ok {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the principal holds the
// given role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
			}

			if principal.Role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+string(requiredRole)+"' role")
			}

			return next(c)
		}
	}
}

// RequireAdministrative restricts a route to administrative roles.
func (m *AuthMiddleware) RequireAdministrative(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
		}

		if !principal.Role.IsAdministrative() {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: administrative role required")
		}

		return next(c)
	}
}
