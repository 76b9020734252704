package tokens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
)

// Blacklist stores revoked tokens. Revoke must be idempotent.
type Blacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string, at time.Time) error
}

type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret    []byte
	blacklist Blacklist
	now       func() time.Time
}

type Option func(*Codec)

func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(secret []byte, blacklist Blacklist, opts ...Option) *Codec {
	c := &Codec{
		secret:    secret,
		blacklist: blacklist,
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Codec) Issue(subjectID uint, isAdmin bool, ttlDays int) (string, error) {
	if ttlDays <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %d days", ttlDays)
	}
	iat := c.now().UTC().Truncate(time.Second)
	claims := Claims{
		Admin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.AddDate(0, 0, ttlDays)),
			ID:        uuid.NewString(),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token in order: structure and signature, expiry, then
// the blacklist. Only the first failing check is reported.
func (c *Codec) Verify(ctx context.Context, raw string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected sign method %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, apperr.ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, apperr.ErrTokenExpired
		default:
			return Identity{}, apperr.ErrTokenMalformed
		}
	}

	sub, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || claims.IssuedAt == nil {
		return Identity{}, apperr.ErrTokenMalformed
	}

	revoked, err := c.blacklist.IsRevoked(ctx, raw)
	if err != nil {
		return Identity{}, err
	}
	if revoked {
		return Identity{}, apperr.ErrTokenRevoked
	}

	return Identity{
		SubjectID: uint(sub),
		IsAdmin:   claims.Admin,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (c *Codec) Revoke(ctx context.Context, raw string) error {
	return c.blacklist.Revoke(ctx, raw, c.now().UTC())
}
