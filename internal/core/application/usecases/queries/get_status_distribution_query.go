package queries

import (
	"errors"

	"orderdesk/internal/pkg/guard"
)

var ErrGetStatusDistributionQueryIsNotConstructed = errors.New(
	"GetStatusDistributionQuery must be created via NewGetStatusDistributionQuery constructor",
)

// GetStatusDistributionQuery counts orders per status code. Used by the
// migration CLI to show before/after snapshots and by the admin dashboard.
type GetStatusDistributionQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatusDistributionQuery creates a parameterless distribution query.
func NewGetStatusDistributionQuery() GetStatusDistributionQuery {
	return GetStatusDistributionQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStatusDistributionQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusDistributionQueryIsNotConstructed)
}

// StatusCount is one row of the distribution. Known reports whether the code
// has a catalog entry; the label falls back to a humanized form otherwise.
type StatusCount struct {
	Status string
	Label  string
	Known  bool
	Count  int64
}
