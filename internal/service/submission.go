package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/logger"
	"docintake-backend/internal/repository"
	"docintake-backend/internal/storage"
)

type submissionService struct {
	requestRepo repository.RequestRepository
	tenantRepo  repository.TenantRepository
	catalog     CatalogService
	events      EventPublisher
	files       storage.StorageInterface
	crm         CRMService
}

func NewSubmissionService(
	requestRepo repository.RequestRepository,
	tenantRepo repository.TenantRepository,
	catalog CatalogService,
	events EventPublisher,
	files storage.StorageInterface,
	crm CRMService,
) SubmissionService {
	return &submissionService{
		requestRepo: requestRepo,
		tenantRepo:  tenantRepo,
		catalog:     catalog,
		events:      events,
		files:       files,
		crm:         crm,
	}
}

// gate loads a request by token and applies the lifecycle checks shared by
// every token-gated operation. On a stale ACTIVE row the EXPIRED status is
// reconciled best-effort before the caller is told the request is gone.
func (s *submissionService) gate(ctx context.Context, token string) (*domain.Request, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}

	req, err := s.requestRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	allowed, reason := domain.CanTransition(req, time.Now())
	if allowed {
		return req, nil
	}

	switch reason {
	case domain.DenialExpired:
		if req.Status == domain.RequestStatusActive {
			s.reconcileExpired(ctx, req)
		}
		return nil, domain.ErrExpired
	default:
		return nil, domain.ErrNotAvailable
	}
}

// reconcileExpired persists the lazy ACTIVE→EXPIRED transition. A persistence
// failure is logged only; the caller still gets the expired signal.
func (s *submissionService) reconcileExpired(ctx context.Context, req *domain.Request) {
	err := s.requestRepo.UpdateFields(ctx, req.Token, map[string]interface{}{
		"status": domain.RequestStatusExpired,
	})
	if err != nil {
		logger.Error("Failed to reconcile expired request", "token", req.Token, "error", err)
		return
	}
	req.Status = domain.RequestStatusExpired
}

func (s *submissionService) FetchByToken(ctx context.Context, token string) (*RequestView, error) {
	req, err := s.gate(ctx, token)
	if err != nil {
		return nil, err
	}

	view := &RequestView{
		Token:     req.Token,
		Kind:      req.Kind,
		Language:  req.Language,
		CreatedOn: req.CreatedOn,
		ExpiresOn: req.ExpiresOn,
	}

	switch req.Kind {
	case domain.RequestKindDocument:
		var payload domain.DocumentRequestPayload
		if len(req.Payload) > 0 {
			if err := json.Unmarshal(req.Payload, &payload); err != nil {
				return nil, fmt.Errorf("failed to decode document payload: %w", err)
			}
		}
		labels := s.catalog.LabelsFor(req.Language)
		for _, item := range payload.Documents {
			label, ok := labels[item.Key]
			if !ok {
				label = item.Key
			}
			view.Documents = append(view.Documents, DocumentView{
				Key:      item.Key,
				Label:    label,
				Quantity: item.Quantity,
			})
		}
	case domain.RequestKindApplication:
		view.FormSchema = req.Payload
	}

	return view, nil
}

func (s *submissionService) Submit(ctx context.Context, token string, payload json.RawMessage, consent *domain.Consent) (*SubmissionReceipt, error) {
	req, err := s.gate(ctx, token)
	if err != nil {
		return nil, err
	}

	merged := domain.MergedConsent(req.Consent, consent)
	completed, err := s.requestRepo.CompleteIfActive(ctx, token, payload, merged)
	if err != nil {
		return nil, err
	}
	if !completed {
		// A concurrent submission won the race on the row update.
		return nil, domain.ErrNotAvailable
	}

	logger.Info("Request submitted", "token", token, "kind", req.Kind)

	// Post-commit side effect: failure is logged and swallowed, never
	// surfaced against the already-committed submission.
	if _, err := s.events.Publish(ctx, domain.EventTopicRequestSubmitted, token, domain.SubmissionEvent{
		Kind:       req.Kind,
		Token:      token,
		CustomerID: req.CustomerID,
		Status:     domain.RequestStatusDone,
		Payload:    payload,
		Consent:    merged,
	}); err != nil {
		logger.Error("Failed to publish submission event", "token", token, "error", err)
	}

	return &SubmissionReceipt{Token: token, Status: domain.RequestStatusDone}, nil
}

func (s *submissionService) UploadDocument(ctx context.Context, token, docKey, fileName, mimeType string, content []byte) (*storage.StoredFile, error) {
	req, err := s.gate(ctx, token)
	if err != nil {
		return nil, err
	}
	if docKey == "" || fileName == "" {
		return nil, fmt.Errorf("%w: document key and file name are required", domain.ErrInvalidInput)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: file content is empty", domain.ErrInvalidInput)
	}

	stored, err := s.files.Store(ctx, fileName, req.Token, mimeType, content, map[string]string{
		"doc_key": docKey,
		"kind":    string(req.Kind),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	// CRM linkage is best-effort once the file is safely stored.
	s.attachToCRM(ctx, req, docKey, stored)

	return stored, nil
}

func (s *submissionService) attachToCRM(ctx context.Context, req *domain.Request, docKey string, stored *storage.StoredFile) {
	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		logger.Error("Failed to resolve tenant for CRM attach", "token", req.Token, "error", err)
		return
	}

	err = s.crm.AttachFiles(ctx, tenant.CRMAccountRef, []CRMAttachment{
		{BoxKey: docKey, FileID: stored.FileID},
	})
	if err != nil {
		logger.Error("Failed to attach file to CRM", "token", req.Token, "file_id", stored.FileID, "error", err)
	}
}
