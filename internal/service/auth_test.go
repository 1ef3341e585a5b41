package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/security"
)

func TestExchangeAPIKey(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("unit-test-secret", 30)

	hash, err := security.HashAPIKey("s3cret")
	require.NoError(t, err)
	tenant := &domain.Tenant{ID: 4, Name: "Acme Finance", APIKeyID: "key-acme", APIKeyHash: hash}

	t.Run("IssuesTokenForValidCredentials", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		tenantRepo.On("GetByKeyID", ctx, "key-acme").Return(tenant, nil)
		svc := NewAuthService(tenantRepo, tokens)

		jwtToken, got, err := svc.ExchangeAPIKey(ctx, "key-acme", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, tenant, got)

		claims, err := tokens.ValidateToken(jwtToken)
		require.NoError(t, err)
		assert.Equal(t, int32(4), claims.TenantID)
	})

	t.Run("WrongSecretRejected", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		tenantRepo.On("GetByKeyID", ctx, "key-acme").Return(tenant, nil)
		svc := NewAuthService(tenantRepo, tokens)

		_, _, err := svc.ExchangeAPIKey(ctx, "key-acme", "wrong")
		assert.ErrorIs(t, err, security.ErrBadCredential)
	})

	t.Run("UnknownKeyIDLooksLikeWrongSecret", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		tenantRepo.On("GetByKeyID", ctx, "key-nobody").Return(nil, domain.ErrNotFound)
		svc := NewAuthService(tenantRepo, tokens)

		_, _, err := svc.ExchangeAPIKey(ctx, "key-nobody", "s3cret")
		assert.ErrorIs(t, err, security.ErrBadCredential)
	})

	t.Run("EmptyCredentialsRejected", func(t *testing.T) {
		svc := NewAuthService(new(MockTenantRepo), tokens)

		_, _, err := svc.ExchangeAPIKey(ctx, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
