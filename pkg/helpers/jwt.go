package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// JWTManager issues and validates the bearer tokens carrying identity and
// role. Tokens are HS256-signed and expire after TTL (one day by default).
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for the given identity.
func (m *JWTManager) IssueToken(id entity.Identity) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &Claims{
		UserID: id.UserID,
		Role:   string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// ValidateToken parses a bearer token and returns the identity it carries.
// Malformed, badly signed, or expired tokens all fail with ErrInvalidToken.
func (m *JWTManager) ValidateToken(tokenStr string) (entity.Identity, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return entity.Identity{}, ErrInvalidToken
	}
	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return entity.Identity{}, ErrInvalidToken
	}
	return entity.Identity{UserID: claims.UserID, Role: role}, nil
}
