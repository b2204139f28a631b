package middleware

import (
	"net/http"
	"strings"

	"roomlink/internal/common"
	"roomlink/internal/services"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates bearer tokens and stores the user ID in the
// request context. Locally issued HS256 tokens are accepted always; when a
// JWKS is configured, RS256 tokens minted by the external identity
// provider are accepted as well, keyed by their sub claim.
func JWTMiddleware(authSvc services.AuthService, jwks *keyfunc.JWKS) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			var subject string
			if claims, err := authSvc.ValidateToken(c.Request().Context(), tokenString); err == nil {
				subject = claims.UserID
			} else if jwks != nil {
				providerToken, err := jwt.Parse(tokenString, jwks.Keyfunc)
				if err != nil || !providerToken.Valid {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				}
				sub, err := providerToken.Claims.GetSubject()
				if err != nil || sub == "" {
					return echo.NewHTTPError(http.StatusUnauthorized, "Missing subject in token")
				}
				subject = sub
			} else {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			userID, err := uuid.Parse(subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user_id format")
			}

			ctx := common.WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
