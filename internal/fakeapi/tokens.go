package fakeapi

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessType  = "access"
	refreshType = "refresh"
)

var errTokenNotValid = errors.New("token is invalid or expired")

type tokenClaims struct {
	Type       string `json:"token_type"`
	UserID     int    `json:"user_id"`
	Generation int    `json:"gen"`
	jwt.RegisteredClaims
}

func (s *Server) signToken(tokenType string, userID, generation int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Type:       tokenType,
		UserID:     userID,
		Generation: generation,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// verifyToken checks signature, expiry, type and that the token has not been
// revoked by a later generation bump.
func (s *Server) verifyToken(raw, tokenType string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Mark(err, errTokenNotValid)
	}
	if claims.Type != tokenType {
		return nil, errors.Wrapf(errTokenNotValid, "expected %s token, got %s", tokenType, claims.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	generation := s.accessGeneration
	if tokenType == refreshType {
		generation = s.refreshGeneration
		if s.usedRefresh[claims.ID] {
			return nil, errors.Wrap(errTokenNotValid, "refresh token already rotated")
		}
	}
	if claims.Generation < generation {
		return nil, errors.Wrap(errTokenNotValid, "token revoked")
	}
	return claims, nil
}

func (s *Server) issuePair(userID int) (access, refresh string, err error) {
	s.mu.Lock()
	accessGen, refreshGen := s.accessGeneration, s.refreshGeneration
	s.mu.Unlock()

	access, err = s.signToken(accessType, userID, accessGen, s.opts.AccessTTL)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to sign access token")
	}
	refresh, err = s.signToken(refreshType, userID, refreshGen, s.opts.RefreshTTL)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to sign refresh token")
	}
	return access, refresh, nil
}
