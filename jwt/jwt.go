// Package jwt signs and verifies RSA access tokens. Each token carries a jti
// that must also exist in the login_tokens table, so logout can revoke it.
package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID  uint
	Role    string
	TokenID string
}

type Manager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	ttl        time.Duration
}

// NewManager loads the RSA keypair from PEM files once at startup.
func NewManager(privateKeyPath, publicKeyPath string, ttl time.Duration) (*Manager, error) {
	privateBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	publicBytes, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &Manager{privateKey: privateKey, publicKey: publicKey, ttl: ttl}, nil
}

// NewManagerFromKeys builds a Manager from in-memory keys (tests).
func NewManagerFromKeys(privateKey *rsa.PrivateKey, ttl time.Duration) *Manager {
	return &Manager{privateKey: privateKey, publicKey: &privateKey.PublicKey, ttl: ttl}
}

func (m *Manager) Generate(userID uint, role string) (string, string, time.Time, error) {
	tokenID := uuid.NewString()
	expiresAt := time.Now().Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"userID": userID,
		"role":   role,
		"jti":    tokenID,
		"exp":    expiresAt.Unix(),
	})
	signed, err := token.SignedString(m.privateKey)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, tokenID, expiresAt, nil
}

func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Header["alg"])
		}
		return m.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := claims["userID"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	tokenID, ok := claims["jti"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: uint(userID), Role: role, TokenID: tokenID}, nil
}
