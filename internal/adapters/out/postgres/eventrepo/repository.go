package eventrepo

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderEventRepository implements OrderEventRepository using GORM.
type GormOrderEventRepository struct {
	db *gorm.DB
}

// NewGormOrderEventRepository creates a new GORM audit-event repository.
func NewGormOrderEventRepository(db *gorm.DB) *GormOrderEventRepository {
	return &GormOrderEventRepository{db: db}
}

// Add appends an event to the audit trail.
func (r *GormOrderEventRepository) Add(ctx context.Context, event *order.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListForOrder returns the order's events in the given visibility scopes,
// newest first.
func (r *GormOrderEventRepository) ListForOrder(
	ctx context.Context,
	orderID kernel.UUID,
	visibilities []order.Visibility,
) ([]*order.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	scopes := make([]string, 0, len(visibilities))
	for _, v := range visibilities {
		scopes = append(scopes, string(v))
	}

	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND visibility IN ?", orderID.Bytes(), scopes).
		Order("created_at DESC, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*order.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// CountForOrder returns how many events the order has across all scopes.
func (r *GormOrderEventRepository) CountForOrder(ctx context.Context, orderID kernel.UUID) (int64, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	return count, err
}
