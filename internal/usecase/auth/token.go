package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the authenticated identity carried in a session token.
type Claims struct {
	UserID uint64
	Email  string
	Role   user.Role
}

// TokenService mints and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (ts *TokenService) Mint(u *user.User) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    string(u.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(ts.ttl).Unix(),
	})
	return t.SignedString(ts.secret)
}

func (ts *TokenService) Verify(raw string) (*Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	uid, ok := mc["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	return &Claims{UserID: uint64(uid), Email: email, Role: user.Role(role)}, nil
}
