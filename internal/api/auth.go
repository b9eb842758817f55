package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/yelinaung/fintrack/internal/ledger"
	"gitlab.com/yelinaung/fintrack/internal/logger"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// Claims is the bearer token payload. ID is the user id.
type Claims struct {
	ID int64 `json:"id"`
	jwt.RegisteredClaims
}

// UserResolver looks up the user a token names.
type UserResolver interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// IssueToken signs an HS256 token for userID that expires after ttl.
func IssueToken(secret []byte, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// parseToken validates a signed token and returns its user id.
func parseToken(secret []byte, raw string) (int64, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if claims.ID <= 0 {
		return 0, errors.New("token has no user id")
	}
	return claims.ID, nil
}

// Authenticate requires a valid bearer token naming an existing user and
// stores the user id in the request context.
func Authenticate(secret []byte, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				WriteError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			userID, err := parseToken(secret, strings.TrimSpace(raw))
			if err != nil {
				logger.Log.Debug().Err(err).Msg("Rejected bearer token")
				WriteError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			if _, err := users.GetUser(r.Context(), userID); err != nil {
				if errors.Is(err, ledger.ErrNotFound) {
					WriteError(w, http.StatusUnauthorized, "Not authorized, user not found")
					return
				}
				writeServiceError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom returns the authenticated user id, or 0 outside Authenticate.
func UserIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}
