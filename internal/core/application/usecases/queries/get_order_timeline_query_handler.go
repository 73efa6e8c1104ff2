package queries

import (
	"context"
	"encoding/json"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTimelineQueryHandler reads the audit trail from the database.
type GetOrderTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTimelineQueryHandler creates a handler for timeline queries.
func NewGetOrderTimelineQueryHandler(db *gorm.DB) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db}
}

// Handle returns the order's audit events visible to the query's audience,
// newest first. An order without visible events yields an empty slice, not
// an error.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) ([]TimelineEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	visibilities := query.Audience().Visibilities()
	scopes := make([]string, 0, len(visibilities))
	for _, v := range visibilities {
		scopes = append(scopes, string(v))
	}

	entries := make([]TimelineEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			event_type,
			title,
			message,
			old_status,
			new_status,
			data,
			visibility,
			created_by,
			created_at
		FROM order_events
		WHERE order_id = ? AND visibility IN ?
		ORDER BY created_at DESC, id
	`, query.OrderID().Bytes(), scopes).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry TimelineEntry
		var id uuid.UUID
		var oldStatus, newStatus *string
		var rawData []byte
		var visibility string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&entry.EventType,
			&entry.Title,
			&entry.Message,
			&oldStatus,
			&newStatus,
			&rawData,
			&visibility,
			&entry.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID
		entry.Visibility = order.Visibility(visibility)
		entry.CreatedAt = createdAt

		entry.OldStatus, entry.OldLabel = labeled(oldStatus)
		entry.NewStatus, entry.NewLabel = labeled(newStatus)

		if len(rawData) > 0 {
			if jsonErr := json.Unmarshal(rawData, &entry.Data); jsonErr != nil {
				return nil, jsonErr
			}
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func labeled(code *string) (*string, *string) {
	if code == nil {
		return nil, nil
	}
	label := order.Status(*code).Label()
	return code, &label
}
