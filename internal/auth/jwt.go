package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"trending-api/internal/config"
)

var (
	jwtSecret   = []byte("development-insecure-secret-change-me")
	jwtIssuer   = "trending-api"
	jwtAudience = "trending-api-clients"
	tokenTTL    = 24 * time.Hour
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Configure replaces the signing settings. Call it once at startup before
// serving requests.
func Configure(cfg config.SecurityConfig) {
	if cfg.JWTSecret != "" {
		jwtSecret = []byte(cfg.JWTSecret)
	}
	if cfg.JWTIssuer != "" {
		jwtIssuer = cfg.JWTIssuer
	}
	if cfg.JWTAudience != "" {
		jwtAudience = cfg.JWTAudience
	}
	if cfg.TokenTTL > 0 {
		tokenTTL = cfg.TokenTTL
	}
}

// Claims represents the JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given user
func GenerateToken(userID, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return jwtSecret, nil
	},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckCredentials compares a login attempt with the configured admin
// account. An empty hash rejects every attempt.
func CheckCredentials(cfg config.SecurityConfig, username, password string) error {
	if cfg.AdminPasswordHash == "" || username != cfg.AdminUsername {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
