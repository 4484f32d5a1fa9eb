package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the claims carried by an access token. The subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the user id stored in the subject claim.
func (c *Claims) UserID() (uint64, error) {
	return strconv.ParseUint(c.Subject, 10, 64)
}

// AccessToken is a signed token and its expiry.
type AccessToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// Tokens issues and parses HS256 access tokens.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a token issuer signing with secret.
func NewTokens(secret, issuer string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a new access token for userID.
func (t *Tokens) Issue(userID uint64) (AccessToken, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	id := uuid.NewString()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    t.issuer,
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return AccessToken{Token: signed, ID: id, ExpiresAt: exp}, nil
}

// Parse validates raw and returns its claims. Only HS256 tokens from the configured
// issuer are accepted.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	claims := new(Claims)

	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ID == "" {
		return nil, ErrInvalidToken
	}

	if _, err = claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
