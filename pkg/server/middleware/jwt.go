package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/apidashio/apidash/pkg/identity"
)

// JWTAuthenticator is middleware that validates bearer tokens and attaches
// the authenticated identity to the request context.
type JWTAuthenticator struct {
	key []byte
}

// NewJWTAuthenticator creates a new JWT authenticator middleware signing and
// verifying with the given HMAC key.
func NewJWTAuthenticator(key []byte) *JWTAuthenticator {
	return &JWTAuthenticator{key: key}
}

// Claims is the token payload minted for dashboard users.
type Claims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

// Mint issues a signed token for the given user, valid for ttl.
func (j *JWTAuthenticator) Mint(userID uuid.UUID, login string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.key)
}

// Middleware returns an HTTP middleware that validates bearer tokens
func (j *JWTAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return j.key, nil
		})
		if err != nil || !token.Valid {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid authorization token"))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid authorization token"))
			return
		}

		id := &identity.Identity{
			UserID: userID,
			Login:  claims.Login,
		}
		if claims.IssuedAt != nil {
			id.IssuedAt = claims.IssuedAt.Time
		}
		if claims.ExpiresAt != nil {
			id.ExpiresAt = claims.ExpiresAt.Time
		}
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			id.WithRemoteIP(net.ParseIP(host))
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
