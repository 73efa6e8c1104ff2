// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It handles the conversion between the order aggregate
// and its relational representation.
package orderrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column is plain text so rows imported with legacy codes survive
// round trips unchanged. Money amounts are stored as integer cents.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number        string    `gorm:"uniqueIndex"`
	CustomerEmail string
	Status        string `gorm:"index"`
	SubtotalCents int64
	DiscountCents int64
	TaxCents      int64
	ShippingCents int64
	TotalCents    int64
	PlacedAt      *time.Time
	TrackingToken *string
	Version       int
	CreatedBy     string
	UpdatedBy     string
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		Number:        aggregate.Number(),
		CustomerEmail: aggregate.CustomerEmail(),
		Status:        string(aggregate.Status()),
		SubtotalCents: aggregate.Subtotal().Cents(),
		DiscountCents: aggregate.Discount().Cents(),
		TaxCents:      aggregate.Tax().Cents(),
		ShippingCents: aggregate.Shipping().Cents(),
		TotalCents:    aggregate.Total().Cents(),
		PlacedAt:      aggregate.PlacedAt(),
		TrackingToken: aggregate.TrackingToken(),
		Version:       aggregate.Version(),
		CreatedBy:     aggregate.CreatedBy(),
		UpdatedBy:     aggregate.UpdatedBy(),
	}
}

// toDomain reconstructs the aggregate from a database row using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(dto.SubtotalCents)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.DiscountCents)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoney(dto.TaxCents)
	if err != nil {
		return nil, err
	}
	shipping, err := kernel.NewMoney(dto.ShippingCents)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		dto.CustomerEmail,
		order.Status(dto.Status),
		subtotal, discount, tax, shipping, total,
		dto.PlacedAt,
		dto.TrackingToken,
		dto.Version,
		dto.CreatedBy, dto.UpdatedBy,
	)
}
