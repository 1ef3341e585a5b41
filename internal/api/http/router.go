package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"docintake-backend/internal/security"
)

// NewRouter wires the public token-gated routes and the tenant-authenticated
// routes into one mux router.
func NewRouter(public *PublicHandler, tenant *TenantHandler, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	// Token-gated surface: the opaque token is the capability, no auth header.
	api.HandleFunc("/intake/{token}", public.HandleFetch).Methods(http.MethodGet)
	api.HandleFunc("/intake/{token}/submit", public.HandleSubmit).Methods(http.MethodPost)
	api.HandleFunc("/intake/{token}/documents", public.HandleDocumentUpload).Methods(http.MethodPost)

	// Tenant credential exchange is the only unauthenticated tenant route.
	api.HandleFunc("/auth/token", tenant.HandleTokenExchange).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(TenantAuth(tokens))
	authed.HandleFunc("/requests", tenant.HandleIssueRequest).Methods(http.MethodPost)
	authed.HandleFunc("/customers/{customerId}/requests", tenant.HandleListRequests).Methods(http.MethodGet)
	authed.HandleFunc("/requests/{token}/status", tenant.HandleStatusUpdate).Methods(http.MethodPost)
	authed.HandleFunc("/admin/sweep", tenant.HandleSweepTrigger).Methods(http.MethodPost)
	authed.HandleFunc("/admin/scheduler", tenant.HandleSchedulerInfo).Methods(http.MethodGet)

	return r
}
