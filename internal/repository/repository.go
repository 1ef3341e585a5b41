package repository

import (
	"context"
	"time"

	"docintake-backend/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByToken(ctx context.Context, token string) (*domain.Request, error)
	ListByTenantAndCustomer(ctx context.Context, tenantID, customerID int32) ([]domain.Request, error)
	// UpdateFields patches the named columns of one request row.
	UpdateFields(ctx context.Context, token string, fields map[string]interface{}) error
	// CompleteIfActive stores the submitted payload and merged consent and
	// flips the row to DONE, but only while its stored status is still
	// ACTIVE. Returns false when another writer got there first.
	CompleteIfActive(ctx context.Context, token string, payload []byte, consent *domain.Consent) (bool, error)
	// BulkExpire marks every ACTIVE row past its expiry date as EXPIRED in
	// one set-based update and returns the number of rows touched.
	BulkExpire(ctx context.Context, now time.Time) (int64, error)
}

type TenantRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Tenant, error)
	GetByKeyID(ctx context.Context, apiKeyID string) (*domain.Tenant, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByTenantAndEmail(ctx context.Context, tenantID int32, email string) (*domain.Customer, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	ListPending(ctx context.Context, limit int32) ([]domain.Event, error)
	MarkDispatched(ctx context.Context, messageID string, at time.Time) error
}
