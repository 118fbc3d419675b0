// Package events публикует доменные события в обменник RabbitMQ.
package events

import (
	"context"
	"time"
)

// Ключи маршрутизации событий.
const (
	AccountRegistered   = "account.registered"
	SubscriptionCreated = "subscription.created"
	VisitRecorded       = "visit.recorded"
	VisitClosed         = "visit.closed"
)

// Publisher отправляет событие с ключом маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Envelope оболочка, в которой событие уходит в очередь.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Nop издатель, который ничего не отправляет.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

func (Nop) Close() error { return nil }
