package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/logger"
	"docintake-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	consent, err := marshalConsent(req.Consent)
	if err != nil {
		return err
	}

	query := `INSERT INTO requests (token, tenant_id, customer_id, kind, payload, language, status, consent, created_on, expires_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	logger.DatabaseCall("INSERT", "requests", "token", req.Token, "tenantID", req.TenantID)

	_, err = r.db.ExecContext(ctx, query,
		req.Token, req.TenantID, req.CustomerID, req.Kind, nullableJSON(req.Payload),
		req.Language, req.Status, consent, req.CreatedOn, req.ExpiresOn)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

func (r *requestRepository) GetByToken(ctx context.Context, token string) (*domain.Request, error) {
	query := `SELECT token, tenant_id, customer_id, kind, payload, language, status, consent, created_on, expires_on
	          FROM requests WHERE token = $1`

	req := &domain.Request{}
	var payload, consent []byte
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&req.Token, &req.TenantID, &req.CustomerID, &req.Kind, &payload,
		&req.Language, &req.Status, &consent, &req.CreatedOn, &req.ExpiresOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request by token: %w", err)
	}

	req.Payload = payload
	if len(consent) > 0 {
		req.Consent = &domain.Consent{}
		if err := json.Unmarshal(consent, req.Consent); err != nil {
			return nil, fmt.Errorf("failed to decode consent: %w", err)
		}
	}
	return req, nil
}

func (r *requestRepository) ListByTenantAndCustomer(ctx context.Context, tenantID, customerID int32) ([]domain.Request, error) {
	query := `SELECT token, tenant_id, customer_id, kind, payload, language, status, consent, created_on, expires_on
	          FROM requests WHERE tenant_id = $1 AND customer_id = $2 ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var req domain.Request
		var payload, consent []byte
		if err := rows.Scan(&req.Token, &req.TenantID, &req.CustomerID, &req.Kind, &payload,
			&req.Language, &req.Status, &consent, &req.CreatedOn, &req.ExpiresOn); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		req.Payload = payload
		if len(consent) > 0 {
			req.Consent = &domain.Consent{}
			if err := json.Unmarshal(consent, req.Consent); err != nil {
				return nil, fmt.Errorf("failed to decode consent: %w", err)
			}
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// updatableColumns guards UpdateFields against arbitrary column names.
var updatableColumns = map[string]bool{
	"status":     true,
	"expires_on": true,
	"payload":    true,
	"consent":    true,
}

func (r *requestRepository) UpdateFields(ctx context.Context, token string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	columns := make([]string, 0, len(fields))
	for col := range fields {
		if !updatableColumns[col] {
			return fmt.Errorf("column %q is not updatable", col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	setClauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns)+1)
	for i, col := range columns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	args = append(args, token)

	query := fmt.Sprintf("UPDATE requests SET %s WHERE token = $%d", strings.Join(setClauses, ", "), len(args))
	logger.DatabaseCall("UPDATE", "requests", "token", token, "columns", strings.Join(columns, ","))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *requestRepository) CompleteIfActive(ctx context.Context, token string, payload []byte, consent *domain.Consent) (bool, error) {
	consentJSON, err := marshalConsent(consent)
	if err != nil {
		return false, err
	}

	// Status guard in the WHERE clause: the row update is the single
	// serialization point for racing submissions on the same token.
	query := `UPDATE requests SET payload = $1, consent = $2, status = $3
	          WHERE token = $4 AND status = $5`
	logger.DatabaseCall("UPDATE", "requests", "token", token, "transition", "DONE")

	result, err := r.db.ExecContext(ctx, query,
		nullableJSON(payload), consentJSON, domain.RequestStatusDone, token, domain.RequestStatusActive)
	if err != nil {
		return false, fmt.Errorf("failed to complete request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

func (r *requestRepository) BulkExpire(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE requests SET status = $1 WHERE status = $2 AND expires_on < $3`
	logger.DatabaseCall("UPDATE", "requests", "operation", "bulk expire")

	result, err := r.db.ExecContext(ctx, query, domain.RequestStatusExpired, domain.RequestStatusActive, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale requests: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func marshalConsent(c *domain.Consent) (interface{}, error) {
	if c == nil {
		return nil, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal consent: %w", err)
	}
	return data, nil
}

func nullableJSON(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return data
}
