package queries

import (
	"context"

	"orderdesk/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetStatusDistributionQueryHandler counts orders per status straight from
// the orders table.
type GetStatusDistributionQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusDistributionQueryHandler creates a handler for distribution queries.
func NewGetStatusDistributionQueryHandler(db *gorm.DB) GetStatusDistributionQueryHandler {
	return GetStatusDistributionQueryHandler{db: db}
}

// Handle returns one row per distinct status code, sorted by code for stable
// output. Unknown legacy codes appear alongside catalog statuses.
func (h GetStatusDistributionQueryHandler) Handle(
	ctx context.Context,
	query GetStatusDistributionQuery,
) ([]StatusCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts := make([]StatusCount, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*) AS cnt
		FROM orders
		GROUP BY status
		ORDER BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row StatusCount
		if err = rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, err
		}

		code := order.Status(row.Status)
		row.Label = code.Label()
		row.Known = code.IsKnown()
		counts = append(counts, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
