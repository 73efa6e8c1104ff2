// Package eventrepo persists the append-only order audit trail.
package eventrepo

import (
	"encoding/json"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for audit events. Rows are
// insert-only; nothing ever updates or deletes them. The data column keeps
// free-form event payloads as JSON.
type EventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	EventType  string
	Title      string
	Message    string
	OldStatus  *string
	NewStatus  *string
	Data       []byte `gorm:"type:jsonb"`
	Visibility string `gorm:"index"`
	CreatedBy  string
	CreatedAt  time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming convention to use "order_events".
func (EventDTO) TableName() string {
	return "order_events"
}

// fromDomain converts an audit event to its database representation.
func fromDomain(event *order.Event) (EventDTO, error) {
	var rawData []byte
	if event.Data() != nil {
		var err error
		rawData, err = json.Marshal(event.Data())
		if err != nil {
			return EventDTO{}, err
		}
	}

	return EventDTO{
		ID:         event.ID().Bytes(),
		OrderID:    event.OrderID().Bytes(),
		EventType:  event.Type(),
		Title:      event.Title(),
		Message:    event.Message(),
		OldStatus:  statusCode(event.OldStatus()),
		NewStatus:  statusCode(event.NewStatus()),
		Data:       rawData,
		Visibility: string(event.Visibility()),
		CreatedBy:  event.CreatedBy(),
		CreatedAt:  event.CreatedAt(),
	}, nil
}

// toDomain reconstructs the audit event from a database row.
func toDomain(dto EventDTO) (*order.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if len(dto.Data) > 0 {
		if err = json.Unmarshal(dto.Data, &data); err != nil {
			return nil, err
		}
	}

	return order.RestoreEvent(
		id,
		orderID,
		dto.EventType,
		dto.Title,
		dto.Message,
		status(dto.OldStatus),
		status(dto.NewStatus),
		data,
		order.Visibility(dto.Visibility),
		dto.CreatedBy,
		dto.CreatedAt,
	)
}

func statusCode(s *order.Status) *string {
	if s == nil {
		return nil
	}
	code := string(*s)
	return &code
}

func status(code *string) *order.Status {
	if code == nil {
		return nil
	}
	s := order.Status(*code)
	return &s
}
