package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// CookieCodec signs and verifies the session cookie. The cookie value is an
// HS256-signed token whose subject is the opaque session id; the server-side
// binding in the Store stays authoritative, so a stolen signing key alone
// cannot resurrect a logged-out session.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewCookieCodec builds a codec with the given signing secret and lifetime.
func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &CookieCodec{secret: []byte(secret), ttl: ttl}
}

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Encode signs a cookie value carrying the session id.
func (c *CookieCodec) Encode(sessionID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(c.ttl)
	claims := &cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Decode verifies a cookie value and returns the session id it carries.
func (c *CookieCodec) Decode(value string) (string, error) {
	parsed, err := jwt.ParseWithClaims(value, &cookieClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*cookieClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", errors.New("invalid cookie claims")
	}
	return claims.SessionID, nil
}
