package service

import (
	"context"
	"errors"
	"fmt"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/logger"
	"docintake-backend/internal/repository"
	"docintake-backend/internal/security"
)

type authService struct {
	tenantRepo repository.TenantRepository
	tokens     security.TokenManager
}

func NewAuthService(tenantRepo repository.TenantRepository, tokens security.TokenManager) AuthService {
	return &authService{
		tenantRepo: tenantRepo,
		tokens:     tokens,
	}
}

func (s *authService) ExchangeAPIKey(ctx context.Context, keyID, secret string) (string, *domain.Tenant, error) {
	if keyID == "" || secret == "" {
		return "", nil, fmt.Errorf("%w: api key id and secret are required", domain.ErrInvalidInput)
	}

	tenant, err := s.tenantRepo.GetByKeyID(ctx, keyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// An unknown key id and a wrong secret look the same to the caller.
			return "", nil, security.ErrBadCredential
		}
		return "", nil, err
	}

	if err := security.VerifyAPIKey(tenant.APIKeyHash, secret); err != nil {
		logger.Warn("API key verification failed", "key_id", keyID)
		return "", nil, err
	}

	token, err := s.tokens.GenerateTenantToken(tenant.ID, tenant.Name)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate tenant token: %w", err)
	}
	return token, tenant, nil
}
