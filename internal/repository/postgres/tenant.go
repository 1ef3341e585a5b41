package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/repository"
)

type tenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) GetByID(ctx context.Context, id int32) (*domain.Tenant, error) {
	query := `SELECT id, name, api_key_id, api_key_hash, contact_email, crm_account_ref, created_on
	          FROM tenants WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *tenantRepository) GetByKeyID(ctx context.Context, apiKeyID string) (*domain.Tenant, error) {
	query := `SELECT id, name, api_key_id, api_key_hash, contact_email, crm_account_ref, created_on
	          FROM tenants WHERE api_key_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, apiKeyID))
}

func (r *tenantRepository) scanOne(row *sql.Row) (*domain.Tenant, error) {
	tenant := &domain.Tenant{}
	err := row.Scan(&tenant.ID, &tenant.Name, &tenant.APIKeyID, &tenant.APIKeyHash,
		&tenant.ContactEmail, &tenant.CRMAccountRef, &tenant.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}
