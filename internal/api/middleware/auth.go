package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-boxoffice/internal/api/shared/errors"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
)

// CALLER_KEY is the gin context key the authenticated caller is stored under
const CALLER_KEY = "auth_caller"

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// JWTSecret is the HMAC secret shared with the token issuer
	JWTSecret string
}

// Claims is the JWT claim set the platform issues. Address identifies the
// caller; Admin grants the administrative capability.
type Claims struct {
	Address string `json:"address"`
	Admin   bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Authenticate validates the Authorization header and returns the caller.
// This is a reusable function that can be called outside the middleware.
func Authenticate(authHeader string, cfg AuthConfig) (*domain.Caller, error) {
	if authHeader == "" {
		return nil, errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, errors.New("invalid Authorization header format")
	}

	claims, err := validateJWT(parts[1], cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	if !domain.IsValidAddress(claims.Address) {
		return nil, fmt.Errorf("token address %q is not a valid address", claims.Address)
	}

	return &domain.Caller{
		Address: domain.NormalizeAddress(claims.Address),
		Admin:   claims.Admin,
	}, nil
}

// Auth returns a gin middleware enforcing bearer JWT authentication
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := Authenticate(c.GetHeader("Authorization"), cfg)
		if err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		c.Set(CALLER_KEY, *caller)
		c.Next()
	}
}

// RequireAdmin returns a gin middleware admitting only admin callers.
// It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok || !caller.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierrors.NewForbiddenError("Admin capability required"))
			return
		}
		c.Next()
	}
}

// CallerFrom extracts the authenticated caller stored by Auth
func CallerFrom(c *gin.Context) (domain.Caller, bool) {
	v, ok := c.Get(CALLER_KEY)
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok
}

// validateJWT validates an HS256 token and returns its claims
func validateJWT(tokenString string, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("JWT secret not configured")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Only accept HMAC signatures
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
