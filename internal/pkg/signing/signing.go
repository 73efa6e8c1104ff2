// Package signing issues and verifies signed tracking links. A link embeds
// the order id and the order's current tracking token; rotating the token
// invalidates every link issued before the rotation.
package signing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretIsRequired = errors.New("signing secret is required")
	ErrInvalidLink      = errors.New("tracking link is invalid or expired")
)

// TrackingClaims is the payload carried by a signed tracking link.
type TrackingClaims struct {
	OrderID       string `json:"oid"`
	TrackingToken string `json:"tok"`
	jwt.RegisteredClaims
}

// TrackingLinkSigner signs and verifies tracking links with HMAC-SHA256.
type TrackingLinkSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewTrackingLinkSigner creates a signer. ttl bounds how long issued links
// stay valid; zero means links never expire.
func NewTrackingLinkSigner(secret string, ttl time.Duration) (*TrackingLinkSigner, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}

	return &TrackingLinkSigner{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Sign produces a signed link token for the given order and tracking token.
func (s *TrackingLinkSigner) Sign(orderID string, trackingToken string) (string, error) {
	now := time.Now().UTC()
	claims := TrackingClaims{
		OrderID:       orderID,
		TrackingToken: trackingToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a signed link and returns its claims. Tampered, foreign or
// expired links fail with ErrInvalidLink.
func (s *TrackingLinkSigner) Verify(signed string) (*TrackingClaims, error) {
	claims := &TrackingClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidLink
	}

	return claims, nil
}
