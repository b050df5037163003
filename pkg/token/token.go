package token

import (
	"errors"
	"fmt"
	"time"

	"todo-tracker/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

// Validity is the fixed lifetime of issued tokens.
const Validity = 7 * 24 * time.Hour

// ErrInvalidToken is returned for any malformed, unsigned, tampered or
// expired token. Callers get no further detail.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Generate issues a signed HS256 token carrying the user's identity.
func Generate(user *models.User, secret []byte) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Validity)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Parse verifies signature and expiry and returns the embedded claims.
func Parse(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
