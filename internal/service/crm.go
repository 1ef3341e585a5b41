package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"docintake-backend/internal/logger"
)

// crmService links stored files to the tenant's CRM account over its JSON API.
type crmService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewCRMService(baseURL, apiKey string, timeout time.Duration) CRMService {
	return &crmService{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type crmAttachRequest struct {
	AccountRef string          `json:"account_ref"`
	Files      []CRMAttachment `json:"files"`
}

func (s *crmService) AttachFiles(ctx context.Context, accountRef string, attachments []CRMAttachment) error {
	if len(attachments) == 0 {
		return nil
	}

	body, err := json.Marshal(crmAttachRequest{AccountRef: accountRef, Files: attachments})
	if err != nil {
		return fmt.Errorf("failed to marshal CRM attach request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/files/attach", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build CRM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	logger.ExternalServiceCall("crm", "attach-files", "account_ref", accountRef, "count", len(attachments))
	resp, err := s.client.Do(req)
	logger.ExternalServiceResult("crm", "attach-files", err)
	if err != nil {
		return fmt.Errorf("CRM attach call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("CRM attach rejected: status %d", resp.StatusCode)
	}
	return nil
}
