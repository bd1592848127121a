package entitlement

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Client-visible signals. The legacy cookie and query parameter are
// display hints only; server-side decisions require the signed token.
const (
	LegacyCookieName  = "jediPaid"
	LegacyCookieValue = "true"
	PaidQueryParam    = "paid"

	// TokenCookieName carries the signed, server-verifiable claim.
	TokenCookieName = "jedi_entitlement"

	scopeFullProfile = "full_profile"
)

var (
	ErrInvalidToken = errors.New("invalid entitlement token")
	ErrNotEntitled  = errors.New("entitlement required")
)

// Claims is the payload of the signed entitlement token.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies entitlement tokens with an HS256 secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewIssuer(secret []byte, ttl time.Duration, issuer string) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("entitlement secret must be configured")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Issuer{secret: secret, ttl: ttl, issuer: issuer}, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Grant mints a signed token asserting full-profile access.
func (i *Issuer) Grant() (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scopeFullProfile,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Scope != scopeFullProfile {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Cookie mints a token and wraps it in the entitlement cookie.
func (i *Issuer) Cookie() (*http.Cookie, error) {
	token, err := i.Grant()
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(i.ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// LegacyCookie builds the plain client-visible paid flag kept for the
// browser UI; nothing server-side trusts it.
func LegacyCookie(ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:   LegacyCookieName,
		Value:  LegacyCookieValue,
		Path:   "/",
		MaxAge: int(ttl.Seconds()),
		Secure: true,
	}
}

// Claimed reports whether the request carries either client-visible
// paid signal: the legacy cookie or the success-redirect query
// parameter. Suitable only as a display hint.
func Claimed(r *http.Request) bool {
	if cookie, err := r.Cookie(LegacyCookieName); err == nil && cookie.Value == LegacyCookieValue {
		return true
	}
	return r.URL.Query().Has(PaidQueryParam)
}

// Gate makes server-side entitlement decisions from request state.
type Gate struct {
	issuer *Issuer
}

func NewGate(issuer *Issuer) *Gate {
	return &Gate{issuer: issuer}
}

// IsEntitled reports whether the request carries a valid signed
// entitlement token. Content that grants value is served only when
// this returns true.
func (g *Gate) IsEntitled(r *http.Request) bool {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		return false
	}
	_, err = g.issuer.Verify(cookie.Value)
	return err == nil
}
