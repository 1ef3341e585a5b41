package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/storage"
)

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByToken(ctx context.Context, token string) (*domain.Request, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockRequestRepo) ListByTenantAndCustomer(ctx context.Context, tenantID, customerID int32) ([]domain.Request, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}
func (m *MockRequestRepo) UpdateFields(ctx context.Context, token string, fields map[string]interface{}) error {
	args := m.Called(ctx, token, fields)
	return args.Error(0)
}
func (m *MockRequestRepo) CompleteIfActive(ctx context.Context, token string, payload []byte, consent *domain.Consent) (bool, error) {
	args := m.Called(ctx, token, payload, consent)
	return args.Bool(0), args.Error(1)
}
func (m *MockRequestRepo) BulkExpire(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockTenantRepo
type MockTenantRepo struct {
	mock.Mock
}

func (m *MockTenantRepo) GetByID(ctx context.Context, id int32) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
func (m *MockTenantRepo) GetByKeyID(ctx context.Context, apiKeyID string) (*domain.Tenant, error) {
	args := m.Called(ctx, apiKeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByTenantAndEmail(ctx context.Context, tenantID int32, email string) (*domain.Customer, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) ListPending(ctx context.Context, limit int32) ([]domain.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) MarkDispatched(ctx context.Context, messageID string, at time.Time) error {
	args := m.Called(ctx, messageID, at)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRequestIssued(ctx context.Context, email, name, link, language string, kind domain.RequestKind, expiresOn time.Time) error {
	args := m.Called(ctx, email, name, link, language, kind, expiresOn)
	return args.Error(0)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic domain.EventTopic, token string, payload interface{}) (string, error) {
	args := m.Called(ctx, topic, token, payload)
	return args.String(0), args.Error(1)
}
func (m *MockEventPublisher) Subscribe(topic domain.EventTopic, handler func(domain.Event)) {
	m.Called(topic, handler)
}
func (m *MockEventPublisher) Dispatch(ctx context.Context, event domain.Event) {
	m.Called(ctx, event)
}

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) LabelsFor(language string) map[string]string {
	args := m.Called(language)
	return args.Get(0).(map[string]string)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(ctx context.Context, fileName, folderRef, mimeType string, content []byte, metadata map[string]string) (*storage.StoredFile, error) {
	args := m.Called(ctx, fileName, folderRef, mimeType, content, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredFile), args.Error(1)
}
func (m *MockStorage) Delete(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

// MockCRMService
type MockCRMService struct {
	mock.Mock
}

func (m *MockCRMService) AttachFiles(ctx context.Context, accountRef string, attachments []CRMAttachment) error {
	args := m.Called(ctx, accountRef, attachments)
	return args.Error(0)
}
