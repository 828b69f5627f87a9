package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// Authenticate extracts and verifies the bearer token on each request and,
// on success, attaches the resolved principal to the request context. It
// never aborts the chain itself: a missing or invalid token simply leaves
// the request unauthenticated for a later authorization check.
func Authenticate(verifier TokenVerifier, resolver PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token, err := bearerTokenFromHeader(req.Header)
			if err != nil {
				return next(c)
			}
			if _, ok := PrincipalFrom(req.Context()); ok {
				return next(c)
			}

			subject, err := verifier.Verify(token, time.Now())
			if err != nil {
				log.WithError(err).Debug("bearer token rejected")
				return next(c)
			}
			user, err := resolver.ResolvePrincipal(req.Context(), subject)
			if err != nil {
				log.WithField("subject", subject).Debug("token subject has no account")
				return next(c)
			}

			c.SetRequest(req.WithContext(WithPrincipal(req.Context(), user)))
			return next(c)
		}
	}
}

// RequirePrincipal rejects requests that reached a protected route without
// an authenticated principal.
func RequirePrincipal() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := PrincipalFrom(c.Request().Context()); !ok {
				return c.JSON(http.StatusUnauthorized, errorResponse("Unauthorized"))
			}
			return next(c)
		}
	}
}
