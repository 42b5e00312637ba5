package sessiontoken

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/taskboard/backend/domain"
)

// Codec signs and verifies the cookie value handed to clients. The cookie
// never carries the raw Redis session id: it wraps it in an HMAC-signed
// token so a tampered cookie is rejected before any store lookup.
type Codec struct {
	secret []byte
	issuer string
}

func NewCodec(secret, issuer string) *Codec {
	return &Codec{secret: []byte(secret), issuer: issuer}
}

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Encode wraps a session id into a signed token expiring with the session.
func (c *Codec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString(c.secret)
}

// Decode verifies the signature and returns the wrapped session id.
func (c *Codec) Decode(value string) (string, error) {
	var parsed claims
	token, err := jwt.ParseWithClaims(value, &parsed, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid || parsed.SessionID == "" {
		return "", domain.ErrUnauthorized
	}
	return parsed.SessionID, nil
}
