// Package events publishes domain notifications (issued charges, recorded
// payments) so that SMS or messenger workers can tell residents about them.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Routing keys, one per message type.
const (
	RoutingChargeIssued    = "charge.issued"
	RoutingPaymentRecorded = "payment.recorded"
)

// Message is anything that can be published.
type Message interface {
	RoutingKey() string
}

// ChargeIssued is sent once per issued charge.
type ChargeIssued struct {
	ChargeID   string    `json:"charge_id"`
	BuildingID string    `json:"building_id"`
	Title      string    `json:"title"`
	Period     string    `json:"period"`
	Total      int64     `json:"total"`
	UnitCount  int       `json:"unit_count"`
	DueDate    int64     `json:"due_date"`
	Timestamp  time.Time `json:"timestamp"`
}

// RoutingKey implements Message.
func (ChargeIssued) RoutingKey() string { return RoutingChargeIssued }

// PaymentRecorded is sent after a payment is applied to a unit charge.
type PaymentRecorded struct {
	PaymentID    string    `json:"payment_id"`
	UnitChargeID string    `json:"unit_charge_id"`
	UnitID       string    `json:"unit_id"`
	BuildingID   string    `json:"building_id"`
	Amount       int64     `json:"amount"`
	Outstanding  int64     `json:"outstanding"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// RoutingKey implements Message.
func (PaymentRecorded) RoutingKey() string { return RoutingPaymentRecorded }

// Encode converts the message to JSON bytes.
func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Publisher delivers messages to whoever listens.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// LogPublisher writes messages to the log. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher that logs through logger (slog.Default if nil).
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// Publish implements Publisher.
func (p *LogPublisher) Publish(ctx context.Context, msg Message) error {
	body, err := Encode(msg)
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "Event", "routing_key", msg.RoutingKey(), "body", string(body))
	return nil
}

// Close implements Publisher.
func (p *LogPublisher) Close() error { return nil }
