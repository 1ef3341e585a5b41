package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"docintake-backend/internal/domain"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrBadCredential = errors.New("invalid api key credentials")
)

// requestTokenBytes gives 160 bits of entropy per opaque request token.
const requestTokenBytes = 20

// NewRequestToken generates an opaque request token. Uniqueness is
// probabilistic; the store's primary-key constraint catches the negligible
// collision case on insert.
func NewRequestToken() (string, error) {
	buf := make([]byte, requestTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate request token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// BuildRequestLink constructs the client-facing URL embedding the token as a
// query parameter. The path segment depends on the request kind so the front
// end can route to the right form.
func BuildRequestLink(baseURL string, kind domain.RequestKind, token string) string {
	path := "documents"
	if kind == domain.RequestKindApplication {
		path = "application"
	}
	return fmt.Sprintf("%s/%s?token=%s", baseURL, path, url.QueryEscape(token))
}

// TenantClaims defines the claims carried by tenant session tokens.
type TenantClaims struct {
	TenantID int32  `json:"tenant_id"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateTenantToken(tenantID int32, name string) (string, error)
	ValidateToken(tokenString string) (*TenantClaims, error)
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiryMinutes int) TokenManager {
	if expiryMinutes <= 0 {
		expiryMinutes = 60
	}
	return &tokenManager{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (m *tokenManager) GenerateTenantToken(tenantID int32, name string) (string, error) {
	claims := TenantClaims{
		TenantID: tenantID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(tenantID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "docintake-backend",
			Audience:  jwt.ClaimStrings{"tenant-api"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*TenantClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TenantClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*TenantClaims); ok && token.Valid {
		if claims.TenantID == 0 && claims.Subject != "" {
			tid, _ := strconv.Atoi(claims.Subject)
			claims.TenantID = int32(tid)
		}
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// HashAPIKey hashes a tenant API-key secret for storage.
func HashAPIKey(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash api key: %w", err)
	}
	return string(hash), nil
}

// VerifyAPIKey checks a presented API-key secret against the stored hash.
func VerifyAPIKey(hash, secret string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return ErrBadCredential
	}
	return nil
}
