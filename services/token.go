package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"labchat/config"
	"labchat/models"

	"github.com/golang-jwt/jwt/v5"
)

func secretKey() []byte {
	return []byte(config.Getenv("SECRET_KEY", "labchat-dev-secret"))
}

func tokenTTL() time.Duration {
	minutes, err := strconv.Atoi(config.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES", "60"))
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// GenerateToken 生成 JWT Token with the username as subject.
func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.Username,
		"exp": time.Now().Add(tokenTTL()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature and expiry and returns the subject username.
// Tokens without an expiry are rejected.
func VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey(), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", errors.New("token has no expiration")
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("username not found in token")
	}
	return sub, nil
}
