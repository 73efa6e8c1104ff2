// Package queries contains read-only operations answered straight from the
// database, bypassing the aggregate and its repositories.
package queries

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
		"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
	)
	ErrAudienceIsInvalid = errors.New("audience must be one of: customer, admin, public")
)

// Audience identifies who is looking at a timeline. It controls which
// visibility scopes of the audit trail are returned.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceAdmin    Audience = "admin"
	AudiencePublic   Audience = "public"
)

// Visibilities returns the event scopes this audience may see. Admins see
// everything, customers see customer and public entries, anyone else only
// public ones.
func (a Audience) Visibilities() []order.Visibility {
	switch a {
	case AudienceAdmin:
		return []order.Visibility{order.VisibilityCustomer, order.VisibilityAdmin, order.VisibilityPublic}
	case AudienceCustomer:
		return []order.Visibility{order.VisibilityCustomer, order.VisibilityPublic}
	default:
		return []order.Visibility{order.VisibilityPublic}
	}
}

// IsValid reports whether the audience is a recognized value.
func (a Audience) IsValid() bool {
	switch a {
	case AudienceCustomer, AudienceAdmin, AudiencePublic:
		return true
	}
	return false
}

// GetOrderTimelineQuery retrieves an order's audit trail scoped to an
// audience, newest entries first.
type GetOrderTimelineQuery struct {
	orderID  kernel.UUID
	audience Audience

	guard guard.ConstructorGuard
}

// NewGetOrderTimelineQuery creates a timeline query for the given order and audience.
func NewGetOrderTimelineQuery(orderID kernel.UUID, audience Audience) (GetOrderTimelineQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, err
	}
	if !audience.IsValid() {
		return GetOrderTimelineQuery{}, ErrAudienceIsInvalid
	}

	return GetOrderTimelineQuery{
		orderID:  orderID,
		audience: audience,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

// OrderID returns the order whose timeline is requested.
func (q GetOrderTimelineQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Audience returns who is asking.
func (q GetOrderTimelineQuery) Audience() Audience {
	return q.audience
}

// TimelineEntry is one audit-trail row prepared for display. Statuses carry
// both the raw code and its catalog label so unknown legacy codes still
// render something readable.
type TimelineEntry struct {
	ID         kernel.UUID
	EventType  string
	Title      string
	Message    string
	OldStatus  *string
	OldLabel   *string
	NewStatus  *string
	NewLabel   *string
	Data       map[string]any
	Visibility order.Visibility
	CreatedBy  string
	CreatedAt  time.Time
}
