package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpiration is applied when JWTConfig.Expiration is zero.
const DefaultExpiration = 1 * time.Hour

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	// Secret is the HMAC-SHA256 symmetric key.
	// Deprecated: Use PrivateKeyPEM/PublicKeyPEM for RSA asymmetric signing.
	Secret string

	// PrivateKeyPEM is a PEM-encoded RSA private key for signing tokens (issuer mode).
	PrivateKeyPEM string

	// PublicKeyPEM is a PEM-encoded RSA public key for validating tokens (validator mode).
	PublicKeyPEM string

	Issuer     string
	Expiration time.Duration
}

// JWTService handles JWT token operations.
type JWTService struct {
	config     JWTConfig
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	useRSA     bool
}

// NewJWTService creates a new JWTService with the given configuration.
//
// Configuration modes:
//   - PrivateKeyPEM set: full issuer mode (can sign and validate). The public key is derived.
//   - PublicKeyPEM set (no private): validation-only mode. GenerateToken returns an error.
//   - Only Secret set: legacy HMAC-SHA256 mode (backwards compatible).
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	if cfg.Expiration == 0 {
		cfg.Expiration = DefaultExpiration
	}
	svc := &JWTService{config: cfg}

	switch {
	case cfg.PrivateKeyPEM != "":
		privKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parse RSA private key: %w", err)
		}
		svc.privateKey = privKey
		svc.publicKey = &privKey.PublicKey
		svc.useRSA = true

	case cfg.PublicKeyPEM != "":
		pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parse RSA public key: %w", err)
		}
		svc.publicKey = pubKey
		svc.useRSA = true

	case cfg.Secret != "":
		svc.useRSA = false

	default:
		return nil, fmt.Errorf("auth: configuration requires PrivateKeyPEM, PublicKeyPEM, or Secret")
	}

	return svc, nil
}

// GenerateToken creates a new JWT token for the given user.
func (s *JWTService) GenerateToken(userID, tenantID uuid.UUID, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:   userID,
		TenantID: tenantID,
		Roles:    roles,
	}

	if s.useRSA {
		if s.privateKey == nil {
			return "", fmt.Errorf("auth: cannot generate token: no private key configured (validation-only mode)")
		}
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		signedToken, err := token.SignedString(s.privateKey)
		if err != nil {
			return "", fmt.Errorf("auth: sign token with RSA: %w", err)
		}
		return signedToken, nil
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signedToken, nil
}

// ValidateToken parses and validates a JWT token string.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if s.useRSA {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v (expected RS256)", token.Header["alg"])
			}
			return s.publicKey, nil
		}

		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("auth: invalid token")
	}

	if s.config.Issuer != "" && claims.Issuer != s.config.Issuer {
		return nil, fmt.Errorf("auth: invalid issuer: got %q, want %q", claims.Issuer, s.config.Issuer)
	}

	return claims, nil
}

// LoadKeyFromFile reads a PEM-encoded key from a file path.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("auth: read key file %q: %w", path, err)
	}
	return data, nil
}

// GenerateKeyPair generates a 2048-bit RSA keypair and returns PEM-encoded
// bytes. Useful for development and testing.
func GenerateKeyPair() (privateKeyPEM, publicKeyPEM []byte, err error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("auth: generate RSA key: %w", err)
	}

	privBytes := x509.MarshalPKCS1PrivateKey(privateKey)
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: privBytes,
	})

	pubBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("auth: marshal public key: %w", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})

	return privPEM, pubPEM, nil
}
