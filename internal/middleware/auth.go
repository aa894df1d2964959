// Package middleware holds the request gates shared by the API routes.
package middleware

import (
	"fmt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

const (
	claimsKey   = "claims"
	tokenErrKey = "claims.error"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "token"

var (
	fromCookie = mustExtractor("cookie:" + SessionCookie)
	fromBearer = mustExtractor("header:" + echo.HeaderAuthorization + ":Bearer ")
)

func mustExtractor(lookup string) echomw.ValuesExtractor {
	extractors, err := echojwt.CreateExtractors(lookup)
	if err != nil || len(extractors) != 1 {
		panic(fmt.Sprintf("token lookup %q: %v", lookup, err))
	}
	return extractors[0]
}

// sessionToken reads the session cookie when the request carries one and
// the bearer header otherwise. A cookie that fails verification is final.
func sessionToken(c echo.Context) ([]string, error) {
	if tokens, err := fromCookie(c); err == nil {
		return tokens, nil
	}
	return fromBearer(c)
}

// RequireAuth verifies the session token and stores its claims on the context.
// No token yields ErrUnauthorized; a token that fails verification yields ErrInvalidToken.
func RequireAuth(jwtSvc *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:       claimsKey,
		TokenLookupFuncs: []echomw.ValuesExtractor{sessionToken},
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtSvc.Verify(token)
			if err != nil {
				c.Set(tokenErrKey, err)
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Get(tokenErrKey) != nil {
				return apperrors.ErrInvalidToken
			}
			return apperrors.ErrUnauthorized
		},
	})
}

// RequireRole rejects callers whose role is not one of roles.
// It must run after RequireAuth.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return apperrors.ErrUnauthorized
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			return apperrors.ErrForbidden
		}
	}
}

// ClaimsFrom returns the verified claims of the current request.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
