package service

import (
	"context"
	"encoding/json"
	"time"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/storage"
)

// StatusAction is a manual tenant-side override of the request lifecycle.
type StatusAction string

const (
	StatusActionExtend     StatusAction = "extend"
	StatusActionReactivate StatusAction = "reactivate"
	StatusActionCancel     StatusAction = "cancel"
)

// IssueRequestInput carries everything needed to open a new request.
type IssueRequestInput struct {
	Kind          domain.RequestKind    `json:"kind"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	CustomerPhone string                `json:"customer_phone,omitempty"`
	Language      string                `json:"language"`
	Documents     []domain.DocumentItem `json:"documents,omitempty"`
	FormSchema    json.RawMessage       `json:"form_schema,omitempty"`
}

// IssuedRequest is the confirmation returned to the issuing tenant.
type IssuedRequest struct {
	Token     string    `json:"token"`
	ExpiresOn time.Time `json:"expires_on"`
	Link      string    `json:"link"`
}

// DocumentView is one requested document enriched with its display label.
type DocumentView struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Quantity int32  `json:"quantity"`
}

// RequestView is the sanitized, token-bearer-facing projection of a request.
// Internal identifiers (tenant, customer) are stripped.
type RequestView struct {
	Token      string             `json:"token"`
	Kind       domain.RequestKind `json:"kind"`
	Language   string             `json:"language"`
	Documents  []DocumentView     `json:"documents,omitempty"`
	FormSchema json.RawMessage    `json:"form_schema,omitempty"`
	CreatedOn  time.Time          `json:"created_on"`
	ExpiresOn  time.Time          `json:"expires_on"`
}

// SubmissionReceipt confirms a completed submission to the token bearer.
type SubmissionReceipt struct {
	Token  string               `json:"token"`
	Status domain.RequestStatus `json:"status"`
}

type IntakeService interface {
	IssueRequest(ctx context.Context, tenantID int32, input IssueRequestInput) (*IssuedRequest, error)
	ListRequests(ctx context.Context, tenantID, customerID int32) ([]domain.Request, error)
	UpdateRequestStatus(ctx context.Context, tenantID int32, token string, action StatusAction) (*domain.Request, error)
}

type SubmissionService interface {
	FetchByToken(ctx context.Context, token string) (*RequestView, error)
	Submit(ctx context.Context, token string, payload json.RawMessage, consent *domain.Consent) (*SubmissionReceipt, error)
	UploadDocument(ctx context.Context, token, docKey, fileName, mimeType string, content []byte) (*storage.StoredFile, error)
}

type AuthService interface {
	// ExchangeAPIKey trades a tenant key id + secret for a session token.
	ExchangeAPIKey(ctx context.Context, keyID, secret string) (string, *domain.Tenant, error)
}

type EmailService interface {
	SendRequestIssued(ctx context.Context, email, name, link, language string, kind domain.RequestKind, expiresOn time.Time) error
}

// CatalogService resolves document keys to display labels per language.
type CatalogService interface {
	LabelsFor(language string) map[string]string
}

// EventPublisher records a lifecycle event post-commit and dispatches it to
// subscribers. Returns the message id.
type EventPublisher interface {
	Publish(ctx context.Context, topic domain.EventTopic, token string, payload interface{}) (string, error)
	Subscribe(topic domain.EventTopic, handler func(domain.Event))
	// Dispatch re-runs delivery for an already persisted event. Used by the
	// outbox retry job.
	Dispatch(ctx context.Context, event domain.Event)
}

// CRMAttachment links one stored file to a CRM document box.
type CRMAttachment struct {
	BoxKey string `json:"box_key"`
	FileID string `json:"file_id"`
}

type CRMService interface {
	AttachFiles(ctx context.Context, accountRef string, attachments []CRMAttachment) error
}
