package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"docintake-backend/internal/scheduler"
	"docintake-backend/internal/security"
	"docintake-backend/internal/service"
)

// TenantHandler serves the tenant-authenticated surface: issuing requests,
// listing them, manual lifecycle overrides, and sweeper operations.
type TenantHandler struct {
	auth      service.AuthService
	intake    service.IntakeService
	scheduler *scheduler.Scheduler
}

func NewTenantHandler(auth service.AuthService, intake service.IntakeService, sched *scheduler.Scheduler) *TenantHandler {
	return &TenantHandler{
		auth:      auth,
		intake:    intake,
		scheduler: sched,
	}
}

type tokenExchangeRequest struct {
	KeyID  string `json:"key_id"`
	Secret string `json:"secret"`
}

type tokenExchangeResponse struct {
	AccessToken string `json:"access_token"`
	TenantName  string `json:"tenant_name"`
}

// HandleTokenExchange trades tenant API credentials for a session token.
// This route is not behind TenantAuth.
func (h *TenantHandler) HandleTokenExchange(w http.ResponseWriter, r *http.Request) {
	var body tokenExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, tenant, err := h.auth.ExchangeAPIKey(r.Context(), body.KeyID, body.Secret)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenExchangeResponse{AccessToken: token, TenantName: tenant.Name})
}

// HandleIssueRequest opens a new request and returns its token, expiry and link.
func (h *TenantHandler) HandleIssueRequest(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantIDFromContext(r.Context())
	if !ok {
		writeError(w, security.ErrInvalidToken)
		return
	}

	var input service.IssueRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	issued, err := h.intake.IssueRequest(r.Context(), tenantID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, issued)
}

// HandleListRequests lists all requests for one customer of the tenant.
func (h *TenantHandler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantIDFromContext(r.Context())
	if !ok {
		writeError(w, security.ErrInvalidToken)
		return
	}

	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid customer id"})
		return
	}

	requests, err := h.intake.ListRequests(r.Context(), tenantID, int32(customerID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

type statusUpdateRequest struct {
	Action service.StatusAction `json:"action"`
}

// HandleStatusUpdate applies a manual extend/reactivate/cancel override.
func (h *TenantHandler) HandleStatusUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantIDFromContext(r.Context())
	if !ok {
		writeError(w, security.ErrInvalidToken)
		return
	}

	var body statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	req, err := h.intake.UpdateRequestStatus(r.Context(), tenantID, mux.Vars(r)["token"], body.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":      req.Token,
		"status":     req.Status,
		"expires_on": req.ExpiresOn,
	})
}

// HandleSweepTrigger runs the expiry sweep immediately, outside its schedule.
func (h *TenantHandler) HandleSweepTrigger(w http.ResponseWriter, r *http.Request) {
	h.scheduler.RunSweepNow()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sweep completed"})
}

// HandleSchedulerInfo exposes the current schedule configuration.
func (h *TenantHandler) HandleSchedulerInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.scheduler.Describe())
}
