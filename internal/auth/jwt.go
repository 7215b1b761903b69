package auth

import (
	"errors"
	"os"
	"strconv"
	"time"

	"phone_catalog_server/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte(getEnv("JWT_SECRET", "supersecret"))

var tokenExpire = func() time.Duration {
	hours, err := strconv.Atoi(getEnv("JWT_EXPIRE_HOURS", "24"))
	if err != nil {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}()

// Claim names carried in issued tokens
const (
	ClaimUserID    = "user_id"
	ClaimUserName  = "user_name"
	ClaimUserEmail = "user_email"
)

// IssueToken signs a bearer token for the given user
func IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		ClaimUserID:    user.ID,
		ClaimUserName:  user.Name,
		ClaimUserEmail: user.Email,
		"exp":          time.Now().Add(tokenExpire).Unix(),
		"iat":          time.Now().Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// VerifyToken parses a bearer token and returns its claims
func VerifyToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed to parse claims")
	}
	return claims, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
