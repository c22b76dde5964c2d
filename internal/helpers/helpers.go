package helpers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	AppMetadata struct {
		Provider string   `json:"provider,omitempty"`
		Roles    []string `json:"roles,omitempty"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

// TokenValidator checks access tokens issued by the identity provider, either against a
// shared HMAC secret or a remote JWKS. The key set is fetched once and refreshed in the background.
type TokenValidator struct {
	secret []byte
	jwks   *keyfunc.JWKS
	parser *jwt.Parser
}

func NewTokenValidator(secret, jwksURL string, logger *slog.Logger) (*TokenValidator, error) {
	if secret == "" && jwksURL == "" {
		return nil, errors.New("either JWT_SECRET or JWKS_URL must be set")
	}
	tv := &TokenValidator{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256", "RS256", "ES256"}),
			jwt.WithExpirationRequired(),
		),
	}

	if jwksURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			Ctx:               ctx,
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				if logger != nil {
					logger.Warn("JWKS refresh failed", "error", err.Error())
				}
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load JWKS: %w", err)
		}
		tv.jwks = jwks
	}
	return tv, nil
}

func (tv *TokenValidator) keyfunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
		if len(tv.secret) == 0 {
			return nil, errors.New("HMAC tokens are not accepted")
		}
		return tv.secret, nil
	}
	if tv.jwks == nil {
		return nil, errors.New("no key set configured for asymmetric tokens")
	}
	return tv.jwks.Keyfunc(token)
}

func (tv *TokenValidator) ValidateToken(tokenStr string) (*CustomClaims, error) {
	token, err := tv.parser.ParseWithClaims(tokenStr, &CustomClaims{}, tv.keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// Close stops the background JWKS refresh.
func (tv *TokenValidator) Close() {
	if tv.jwks != nil {
		tv.jwks.EndBackground()
	}
}

// SignToken issues an HS256 token. Used for local tooling and tests.
func SignToken(secret string, claims *CustomClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
