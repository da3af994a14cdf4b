// Package token mints, verifies and rotates the HS256 bearer tokens handed
// out on login.
package token

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	Issuer   = "phast-auth"
	Audience = "phast-auth-client"
	TTL      = time.Hour

	expiryLeeway = time.Second
)

var (
	ErrMalformedToken       = errors.New("malformed token")
	ErrInvalidSignature     = errors.New("invalid token signature")
	ErrExpired              = errors.New("token expired")
	ErrRefreshWindowElapsed = errors.New("token expired beyond refresh window")
	ErrRandomness           = errors.New("secure random source unavailable")
)

// Claims is the decoded payload. Numeric claims decode as float64.
type Claims = jwt.MapClaims

var reserved = []string{"sub", "iat", "exp", "jti", "iss", "aud"}

type Codec struct {
	secret []byte
	now    func() time.Time
	random io.Reader
	grace  time.Duration
}

type Option func(*Codec)

func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func WithRandom(r io.Reader) Option {
	return func(c *Codec) { c.random = r }
}

// WithRefreshGrace bounds how long after expiry a token may still be rotated.
// Zero keeps rotation unbounded.
func WithRefreshGrace(d time.Duration) Option {
	return func(c *Codec) { c.grace = d }
}

func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	c := &Codec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Mint signs claims for one hour. The subject is taken from claims["id"];
// reserved claims supplied by the caller are overwritten.
func (c *Codec) Mint(claims map[string]any) (string, error) {
	var sub any
	if id, ok := claims["id"]; ok && id != nil {
		sub = fmt.Sprint(id)
	}
	return c.mint(claims, sub)
}

func (c *Codec) mint(claims map[string]any, sub any) (string, error) {
	jti, err := c.newJTI()
	if err != nil {
		return "", err
	}

	now := c.now()
	payload := make(jwt.MapClaims, len(claims)+len(reserved))
	for k, v := range claims {
		payload[k] = v
	}
	for _, k := range reserved {
		delete(payload, k)
	}

	if sub != nil {
		payload["sub"] = sub
	}
	payload["iat"] = now.Unix()
	payload["exp"] = now.Add(TTL).Unix()
	payload["jti"] = jti
	payload["iss"] = Issuer
	payload["aud"] = Audience

	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(c.secret)
}

func (c *Codec) Verify(raw string) (Claims, error) {
	// exp is whole seconds: a token stays valid through its exp second
	claims, err := c.parse(raw, jwt.WithTimeFunc(c.now), jwt.WithLeeway(expiryLeeway))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Rotate re-mints raw with fresh iat, exp and jti. Expired tokens are
// accepted as long as the signature holds and the refresh grace allows it.
func (c *Codec) Rotate(raw string) (string, error) {
	claims, err := c.parse(raw, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", err
	}

	if c.grace > 0 {
		exp, err := claims.GetExpirationTime()
		if err != nil {
			return "", ErrMalformedToken
		}
		if exp != nil && c.now().After(exp.Add(c.grace)) {
			return "", ErrRefreshWindowElapsed
		}
	}

	delete(claims, "exp")
	delete(claims, "iat")
	delete(claims, "jti")

	return c.mint(claims, claims["sub"])
}

// parse checks the signature against the encoded segment before anything
// is decoded, so every change to the signature text is rejected.
func (c *Codec) parse(raw string, opts ...jwt.ParserOption) (jwt.MapClaims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	want, err := jwt.SigningMethodHS256.Sign(parts[0]+"."+parts[1], c.secret)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	if !hmac.Equal([]byte(base64.RawURLEncoding.EncodeToString(want)), []byte(parts[2])) {
		return nil, ErrInvalidSignature
	}

	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)

	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, ErrMalformedToken
	default:
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}

func (c *Codec) newJTI() (string, error) {
	id, err := uuid.NewRandomFromReader(c.random)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	return hex.EncodeToString(id[:]), nil
}
