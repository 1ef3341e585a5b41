package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/logger"
	"docintake-backend/internal/repository"
)

// eventPublisher is an outbox-backed bus: every event is persisted before any
// subscriber runs, so a crashed dispatch can be retried by the scheduled
// outbox job.
type eventPublisher struct {
	eventRepo repository.EventRepository

	mu          sync.RWMutex
	subscribers map[domain.EventTopic][]func(domain.Event)
}

func NewEventPublisher(eventRepo repository.EventRepository) EventPublisher {
	return &eventPublisher{
		eventRepo:   eventRepo,
		subscribers: make(map[domain.EventTopic][]func(domain.Event)),
	}
}

func (p *eventPublisher) Subscribe(topic domain.EventTopic, handler func(domain.Event)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers[topic] = append(p.subscribers[topic], handler)
}

func (p *eventPublisher) Publish(ctx context.Context, topic domain.EventTopic, token string, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal event payload: %w", err)
	}

	event := domain.Event{
		MessageID: uuid.New().String(),
		Topic:     topic,
		Token:     token,
		Payload:   data,
		CreatedOn: time.Now(),
	}
	if err := p.eventRepo.Create(ctx, &event); err != nil {
		return "", err
	}

	p.Dispatch(ctx, event)
	return event.MessageID, nil
}

// Dispatch runs the subscribers for one persisted event and marks it
// dispatched. Subscriber panics are contained per handler.
func (p *eventPublisher) Dispatch(ctx context.Context, event domain.Event) {
	p.mu.RLock()
	handlers := p.subscribers[event.Topic]
	p.mu.RUnlock()

	for _, handler := range handlers {
		p.run(handler, event)
	}

	if err := p.eventRepo.MarkDispatched(ctx, event.MessageID, time.Now()); err != nil {
		logger.Error("Failed to mark event dispatched", "message_id", event.MessageID, "error", err)
	}
}

func (p *eventPublisher) run(handler func(domain.Event), event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Event subscriber panicked", "topic", event.Topic, "message_id", event.MessageID, "panic", r)
		}
	}()
	handler(event)
}
