package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/labfetch/labfetch-api/internal/model"
)

// TestJWTSecret signs every token minted by this package.
const TestJWTSecret = "test-secret"

func sign(t testing.TB, adminID int64, username string, exp time.Time) string {
	t.Helper()
	claims := model.Claims{
		AdminID:  adminID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// Token returns a valid admin token.
func Token(t testing.TB, adminID int64, username string) string {
	return sign(t, adminID, username, time.Now().Add(time.Hour))
}

// ExpiredToken returns a correctly signed token that expired a minute ago.
func ExpiredToken(t testing.TB, adminID int64, username string) string {
	return sign(t, adminID, username, time.Now().Add(-time.Minute))
}
