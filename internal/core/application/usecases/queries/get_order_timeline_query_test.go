package queries_test

import (
	"testing"

	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderTimelineQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderTimelineQuery(orderID, queries.AudienceCustomer)

	require.NoError(t, err)
	assert.Equal(t, orderID, query.OrderID())
	assert.Equal(t, queries.AudienceCustomer, query.Audience())
	assert.NoError(t, query.Validate())
}

func TestNewGetOrderTimelineQuery_ZeroOrderID(t *testing.T) {
	_, err := queries.NewGetOrderTimelineQuery(kernel.UUID{}, queries.AudienceAdmin)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetOrderTimelineQuery_InvalidAudience(t *testing.T) {
	_, err := queries.NewGetOrderTimelineQuery(kernel.NewUUID(), queries.Audience("everyone"))

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrAudienceIsInvalid)
}

func TestGetOrderTimelineQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.GetOrderTimelineQuery

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetOrderTimelineQueryIsNotConstructed)
}

func TestAudience_Visibilities(t *testing.T) {
	testCases := []struct {
		name     string
		audience queries.Audience
		want     []order.Visibility
	}{
		{
			name:     "admin sees everything",
			audience: queries.AudienceAdmin,
			want:     []order.Visibility{order.VisibilityCustomer, order.VisibilityAdmin, order.VisibilityPublic},
		},
		{
			name:     "customer sees customer and public",
			audience: queries.AudienceCustomer,
			want:     []order.Visibility{order.VisibilityCustomer, order.VisibilityPublic},
		},
		{
			name:     "public sees only public",
			audience: queries.AudiencePublic,
			want:     []order.Visibility{order.VisibilityPublic},
		},
		{
			name:     "unrecognized falls back to public",
			audience: queries.Audience("stranger"),
			want:     []order.Visibility{order.VisibilityPublic},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.audience.Visibilities())
		})
	}
}

func TestAudience_IsValid(t *testing.T) {
	assert.True(t, queries.AudienceCustomer.IsValid())
	assert.True(t, queries.AudienceAdmin.IsValid())
	assert.True(t, queries.AudiencePublic.IsValid())
	assert.False(t, queries.Audience("").IsValid())
	assert.False(t, queries.Audience("everyone").IsValid())
}
