package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleViewer   = "viewer"
	RoleOperator = "operator"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type UserContext struct {
	Subject string
	Role    string
}

func ValidRole(role string) bool {
	return role == RoleViewer || role == RoleOperator
}

// Allows reports whether role grants access to endpoints guarded by required.
// Operators may do everything viewers can.
func Allows(role, required string) bool {
	if role == required {
		return true
	}
	return role == RoleOperator && required == RoleViewer
}

func GenerateToken(secret, subject, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("signing secret is empty")
	}
	if !ValidRole(role) {
		return "", errors.New("unknown role " + role)
	}
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
