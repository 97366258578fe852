package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager issues and validates the bearer tokens handed out at login.
// Tokens are stateless; validity is decided purely by signature and
// expiration at parse time, nothing is persisted or revoked.
type JWTManager struct {
	Secret     []byte
	Issuer     string
	Audience   string
	Expiration time.Duration
}

func NewJWTManager(secret, issuer, audience string, expiration time.Duration) *JWTManager {
	return &JWTManager{
		Secret:     []byte(secret),
		Issuer:     issuer,
		Audience:   audience,
		Expiration: expiration,
	}
}

// Claims carries the identity asserted by a token. Email and Username are
// custom claims; Roles holds every role name attached to the user at
// issuance time.
type Claims struct {
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the given identity. Every call mints a
// fresh jti, so two tokens for the same user are never identical even when
// issued in the same instant.
func (m *JWTManager) GenerateToken(userID, email, username string, roles []string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.Expiration)
	claims := &Claims{
		Email:    email,
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			Issuer:    m.Issuer,
			Audience:  jwt.ClaimStrings{m.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// ParseToken validates signature, expiry, issuer and audience, and returns
// the embedded claims.
func (m *JWTManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithIssuer(m.Issuer), jwt.WithAudience(m.Audience))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
