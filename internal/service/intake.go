package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"docintake-backend/internal/config"
	"docintake-backend/internal/domain"
	"docintake-backend/internal/logger"
	"docintake-backend/internal/repository"
	"docintake-backend/internal/security"
)

type intakeService struct {
	requestRepo  repository.RequestRepository
	customerRepo repository.CustomerRepository
	email        EmailService
	events       EventPublisher
	cfg          *config.Config
}

func NewIntakeService(
	requestRepo repository.RequestRepository,
	customerRepo repository.CustomerRepository,
	email EmailService,
	events EventPublisher,
	cfg *config.Config,
) IntakeService {
	return &intakeService{
		requestRepo:  requestRepo,
		customerRepo: customerRepo,
		email:        email,
		events:       events,
		cfg:          cfg,
	}
}

func (s *intakeService) IssueRequest(ctx context.Context, tenantID int32, input IssueRequestInput) (*IssuedRequest, error) {
	if !domain.ValidKind(input.Kind) {
		return nil, fmt.Errorf("%w: unknown request kind %q", domain.ErrInvalidInput, input.Kind)
	}
	if input.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: customer email is required", domain.ErrInvalidInput)
	}

	payload, err := buildIssuePayload(input)
	if err != nil {
		return nil, err
	}

	customer, err := s.resolveCustomer(ctx, tenantID, input)
	if err != nil {
		return nil, err
	}

	token, err := security.NewRequestToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	language := input.Language
	if language == "" {
		language = "en"
	}

	req := &domain.Request{
		Token:      token,
		TenantID:   tenantID,
		CustomerID: customer.ID,
		Kind:       input.Kind,
		Payload:    payload,
		Language:   language,
		Status:     domain.RequestStatusActive,
		CreatedOn:  now,
		ExpiresOn:  now.AddDate(0, 0, s.cfg.ExpiryDaysFor(string(input.Kind))),
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	link := security.BuildRequestLink(s.cfg.Intake.LinkBaseURL, req.Kind, token)
	logger.Info("Issued request", "kind", req.Kind, "token", token, "expires_on", req.ExpiresOn)

	// The request is committed; the notification must not fail issuance.
	go s.notifyCustomer(customer, req, link)

	if _, err := s.events.Publish(ctx, domain.EventTopicRequestIssued, token, domain.SubmissionEvent{
		Kind:       req.Kind,
		Token:      token,
		CustomerID: customer.ID,
		Status:     req.Status,
	}); err != nil {
		logger.Error("Failed to publish issued event", "token", token, "error", err)
	}

	return &IssuedRequest{
		Token:     token,
		ExpiresOn: req.ExpiresOn,
		Link:      link,
	}, nil
}

func (s *intakeService) notifyCustomer(customer *domain.Customer, req *domain.Request, link string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.email.SendRequestIssued(ctx, customer.Email, customer.Name, link, req.Language, req.Kind, req.ExpiresOn); err != nil {
		logger.Error("Failed to send request notification", "token", req.Token, "email", customer.Email, "error", err)
	}
}

func (s *intakeService) resolveCustomer(ctx context.Context, tenantID int32, input IssueRequestInput) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByTenantAndEmail(ctx, tenantID, input.CustomerEmail)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	customer = &domain.Customer{
		TenantID: tenantID,
		Name:     input.CustomerName,
		Email:    input.CustomerEmail,
		Phone:    input.CustomerPhone,
		Language: input.Language,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func buildIssuePayload(input IssueRequestInput) (json.RawMessage, error) {
	switch input.Kind {
	case domain.RequestKindDocument:
		if len(input.Documents) == 0 {
			return nil, fmt.Errorf("%w: a document request needs at least one document", domain.ErrInvalidInput)
		}
		payload, err := json.Marshal(domain.DocumentRequestPayload{Documents: input.Documents})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document payload: %w", err)
		}
		return payload, nil
	case domain.RequestKindApplication:
		// The form schema is opaque to the lifecycle core; an empty schema
		// means the front end renders its default application form.
		return input.FormSchema, nil
	}
	return nil, fmt.Errorf("%w: unknown request kind %q", domain.ErrInvalidInput, input.Kind)
}

func (s *intakeService) ListRequests(ctx context.Context, tenantID, customerID int32) ([]domain.Request, error) {
	return s.requestRepo.ListByTenantAndCustomer(ctx, tenantID, customerID)
}

func (s *intakeService) UpdateRequestStatus(ctx context.Context, tenantID int32, token string, action StatusAction) (*domain.Request, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}

	req, err := s.requestRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	// Cross-tenant reads are forbidden; a foreign token looks absent.
	if req.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	fields := map[string]interface{}{}

	switch action {
	case StatusActionExtend, StatusActionReactivate:
		req.Status = domain.RequestStatusActive
		req.ExpiresOn = now.AddDate(0, 0, s.cfg.ExpiryDaysFor(string(req.Kind)))
	case StatusActionCancel:
		req.Status = domain.RequestStatusExpired
		req.ExpiresOn = now
	default:
		return nil, fmt.Errorf("%w: unknown status action %q", domain.ErrInvalidInput, action)
	}

	fields["status"] = req.Status
	fields["expires_on"] = req.ExpiresOn
	if err := s.requestRepo.UpdateFields(ctx, token, fields); err != nil {
		return nil, err
	}

	logger.Info("Manual status update applied", "token", token, "action", action, "status", req.Status)
	return req, nil
}
