package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

var jwtSecret string
var jwtExpiryHours = 24

func SetJWTSecret(secret string) {
	jwtSecret = secret
}

func SetJWTExpiry(hours int) {
	if hours > 0 {
		jwtExpiryHours = hours
	}
}

func getJWTSecret() string {
	if jwtSecret == "" {
		panic("JWT secret is not set in config")
	}
	return jwtSecret
}

// ExtractNameFromEmail extracts the username before '@'
func ExtractNameFromEmail(email string) string {
	re := regexp.MustCompile(`^([^@]+)`)
	match := re.FindStringSubmatch(email)
	if len(match) < 2 {
		return email
	}
	return match[1]
}

// Claims carries the auth provider's opaque uid alongside the email.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateJWTToken(uid, email string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(jwtExpiryHours) * time.Hour)

	claims := &Claims{
		UID:   uid,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   uid,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(getJWTSecret()))
	if err != nil {
		return "", fmt.Errorf("failed to generate token")
	}

	return signedToken, nil
}

func ParseJWTToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	secret := []byte(getJWTSecret())

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateSecretHash builds the Cognito client secret hash for a username.
func GenerateSecretHash(username, clientID, clientSecret string) string {
	key := []byte(clientSecret)
	message := username + clientID

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
