package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"docintake-backend/internal/domain"
)

func newRequestRepo(t *testing.T) (*requestRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRequestRepository(db).(*requestRepository), mock
}

func TestRequestRepository_Create(t *testing.T) {
	repo, mock := newRequestRepo(t)
	ctx := context.Background()

	now := time.Now()
	req := &domain.Request{
		Token:      "tok123",
		TenantID:   1,
		CustomerID: 2,
		Kind:       domain.RequestKindDocument,
		Payload:    json.RawMessage(`{"documents":[{"key":"payslip","quantity":3}]}`),
		Language:   "de",
		Status:     domain.RequestStatusActive,
		CreatedOn:  now,
		ExpiresOn:  now.AddDate(0, 0, 30),
	}

	mock.ExpectExec("INSERT INTO requests").
		WithArgs(req.Token, req.TenantID, req.CustomerID, string(req.Kind), []byte(req.Payload),
			req.Language, string(req.Status), nil, req.CreatedOn, req.ExpiresOn).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(ctx, req)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_GetByToken(t *testing.T) {
	repo, mock := newRequestRepo(t)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"token", "tenant_id", "customer_id", "kind", "payload", "language", "status", "consent", "created_on", "expires_on"}).
			AddRow("tok123", 1, 2, "DOCUMENT_REQUEST", []byte(`{}`), "en", "ACTIVE", []byte(`{"given":true}`), now, now.AddDate(0, 0, 30))

		mock.ExpectQuery("SELECT (.+) FROM requests WHERE token =").
			WithArgs("tok123").
			WillReturnRows(rows)

		req, err := repo.GetByToken(ctx, "tok123")
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestStatusActive, req.Status)
		assert.NotNil(t, req.Consent)
		assert.True(t, *req.Consent.Given)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM requests WHERE token =").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"token"}))

		_, err := repo.GetByToken(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRequestRepository_CompleteIfActive(t *testing.T) {
	repo, mock := newRequestRepo(t)
	ctx := context.Background()
	payload := []byte(`{"a":1}`)

	t.Run("Wins", func(t *testing.T) {
		mock.ExpectExec("UPDATE requests SET payload =").
			WithArgs(payload, nil, "DONE", "tok123", "ACTIVE").
			WillReturnResult(sqlmock.NewResult(0, 1))

		completed, err := repo.CompleteIfActive(ctx, "tok123", payload, nil)
		assert.NoError(t, err)
		assert.True(t, completed)
	})

	t.Run("AlreadyDone", func(t *testing.T) {
		mock.ExpectExec("UPDATE requests SET payload =").
			WithArgs(payload, nil, "DONE", "tok123", "ACTIVE").
			WillReturnResult(sqlmock.NewResult(0, 0))

		completed, err := repo.CompleteIfActive(ctx, "tok123", payload, nil)
		assert.NoError(t, err)
		assert.False(t, completed)
	})
}

func TestRequestRepository_BulkExpire(t *testing.T) {
	repo, mock := newRequestRepo(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("ExpiresStaleRows", func(t *testing.T) {
		mock.ExpectExec("UPDATE requests SET status =").
			WithArgs("EXPIRED", "ACTIVE", now).
			WillReturnResult(sqlmock.NewResult(0, 3))

		count, err := repo.BulkExpire(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("IdempotentSecondRun", func(t *testing.T) {
		mock.ExpectExec("UPDATE requests SET status =").
			WithArgs("EXPIRED", "ACTIVE", now).
			WillReturnResult(sqlmock.NewResult(0, 0))

		count, err := repo.BulkExpire(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestRequestRepository_UpdateFields(t *testing.T) {
	repo, mock := newRequestRepo(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE requests SET").
			WithArgs("EXPIRED", "tok123").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateFields(ctx, "tok123", map[string]interface{}{
			"status": string(domain.RequestStatusExpired),
		})
		assert.NoError(t, err)
	})

	t.Run("UnknownColumnRejected", func(t *testing.T) {
		err := repo.UpdateFields(ctx, "tok123", map[string]interface{}{
			"tenant_id": 99,
		})
		assert.Error(t, err)
	})

	t.Run("MissingRow", func(t *testing.T) {
		mock.ExpectExec("UPDATE requests SET").
			WithArgs("EXPIRED", "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateFields(ctx, "missing", map[string]interface{}{
			"status": string(domain.RequestStatusExpired),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
