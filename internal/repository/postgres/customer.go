package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (tenant_id, name, email, phone, language, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		c.TenantID, c.Name, c.Email, c.Phone, c.Language, time.Now()).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT id, tenant_id, name, email, phone, language, created_on
	          FROM customers WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *customerRepository) GetByTenantAndEmail(ctx context.Context, tenantID int32, email string) (*domain.Customer, error) {
	query := `SELECT id, tenant_id, name, email, phone, language, created_on
	          FROM customers WHERE tenant_id = $1 AND email = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, tenantID, email))
}

func (r *customerRepository) scanOne(row *sql.Row) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.Language, &c.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}
