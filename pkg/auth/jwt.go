package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig selects how tokens are verified. PublicKeyPEM (RS256) takes
// precedence over Secret (HS256).
type JWTConfig struct {
	Secret       string
	PublicKeyPEM string
	Issuer       string
}

// Validator verifies bearer tokens. It never issues them.
type Validator struct {
	issuer    string
	secret    []byte
	publicKey *rsa.PublicKey
}

// NewValidator parses the verification key.
func NewValidator(cfg JWTConfig) (*Validator, error) {
	v := &Validator{issuer: cfg.Issuer}

	switch {
	case cfg.PublicKeyPEM != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse RSA public key: %w", err)
		}
		v.publicKey = key
	case cfg.Secret != "":
		v.secret = []byte(cfg.Secret)
	default:
		return nil, errors.New("jwt configuration requires PublicKeyPEM or Secret")
	}

	return v, nil
}

// Validate parses tokenString and checks signature, expiry and issuer.
func (v *Validator) Validate(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.publicKey != nil {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		if v.publicKey != nil {
			return v.publicKey, nil
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("validate token: %w", err)
	}
	return claims, nil
}

// LoadKeyFromFile reads a PEM-encoded key from path.
func LoadKeyFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read key file %q: %w", path, err)
	}
	return string(data), nil
}
