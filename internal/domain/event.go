package domain

import (
	"encoding/json"
	"time"
)

type EventTopic string

const (
	EventTopicRequestIssued    EventTopic = "request.issued"
	EventTopicRequestSubmitted EventTopic = "request.submitted"
	EventTopicRequestExpired   EventTopic = "request.expired"
)

// Event is one outbox row: a lifecycle fact recorded after the core
// transition committed, dispatched to subscribers afterwards.
type Event struct {
	MessageID    string          `json:"message_id"`
	Topic        EventTopic      `json:"topic"`
	Token        string          `json:"token"`
	Payload      json.RawMessage `json:"payload"`
	Dispatched   bool            `json:"dispatched"`
	CreatedOn    time.Time       `json:"created_on"`
	DispatchedOn *time.Time      `json:"dispatched_on,omitempty"`
}

// SubmissionEvent is the payload published when a request completes.
type SubmissionEvent struct {
	Kind       RequestKind     `json:"kind"`
	Token      string          `json:"token"`
	CustomerID int32           `json:"customer_id"`
	Status     RequestStatus   `json:"status"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Consent    *Consent        `json:"consent,omitempty"`
}
