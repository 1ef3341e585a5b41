package domain

import (
	"encoding/json"
	"time"
)

type RequestKind string

const (
	RequestKindDocument    RequestKind = "DOCUMENT_REQUEST"
	RequestKindApplication RequestKind = "MORTGAGE_APPLICATION"
)

// ValidKind reports whether k is one of the supported request kinds.
func ValidKind(k RequestKind) bool {
	return k == RequestKindDocument || k == RequestKindApplication
}

type RequestStatus string

const (
	RequestStatusActive  RequestStatus = "ACTIVE"
	RequestStatusDone    RequestStatus = "DONE"
	RequestStatusExpired RequestStatus = "EXPIRED"
)

// IsTerminal reports whether the status permits no further token-gated transition.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusDone || s == RequestStatusExpired
}

// Request is the unit of work for both document collection and mortgage
// application intake. The token doubles as primary identifier and bearer
// capability for unauthenticated client access.
type Request struct {
	Token      string          `json:"token"`
	TenantID   int32           `json:"tenant_id"`
	CustomerID int32           `json:"customer_id"`
	Kind       RequestKind     `json:"kind"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Language   string          `json:"language"`
	Status     RequestStatus   `json:"status"`
	Consent    *Consent        `json:"consent,omitempty"`
	CreatedOn  time.Time       `json:"created_on"`
	ExpiresOn  time.Time       `json:"expires_on"`
}

// DocumentItem is one entry of a document-request payload: which document
// the tenant is asking for and how many of it.
type DocumentItem struct {
	Key      string `json:"key"`
	Quantity int32  `json:"quantity"`
}

// DocumentRequestPayload is the kind-specific payload of a DOCUMENT_REQUEST.
type DocumentRequestPayload struct {
	Documents []DocumentItem `json:"documents"`
}
