package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies persistence behavior against
// a real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(number string) *order.Order {
	testOrder, err := order.NewOrder(kernel.NewUUID(), number, "manager")
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1001")
	testOrder.SetCustomerEmail("customer@example.com")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), loaded.ID())
	suite.Equal("ORD-1001", loaded.Number())
	suite.Equal("customer@example.com", loaded.CustomerEmail())
	suite.Equal(order.StatusDraft, loaded.Status())
	suite.Equal(1, loaded.Version())
	suite.Nil(loaded.PlacedAt())
	suite.Nil(loaded.TrackingToken())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndBumpsVersion() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1002")
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	_, err = loaded.RequestStatusChange(
		order.StatusEstimateSent, "manager", "", order.VisibilityAdmin)
	suite.Require().NoError(err)
	loaded.IssueTrackingToken()

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusEstimateSent, reloaded.Status())
	suite.Equal(2, reloaded.Version())
	suite.NotNil(reloaded.TrackingToken())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ConcurrentModification() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1003")
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two copies loaded at the same version.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	_, err = first.RequestStatusChange(order.StatusEstimateSent, "manager", "", order.VisibilityAdmin)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.RequestStatusChange(order.StatusOnHold, "manager", "", order.VisibilityAdmin)
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)

	// The first writer's change is intact.
	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusEstimateSent, reloaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingRow_NotFound() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-1004")

	err := suite.repository.Update(ctx, testOrder)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_OrderedByNumber() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	for _, number := range []string{"ORD-3000", "ORD-1000", "ORD-2000"} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder(number)))
	}

	orders, err := suite.repository.GetAllInStatus(ctx, order.StatusDraft)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 3)
	suite.Equal("ORD-1000", orders[0].Number())
	suite.Equal("ORD-2000", orders[1].Number())
	suite.Equal("ORD-3000", orders[2].Number())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByStatus_IncludesLegacyCodes() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-1000")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-2000")))

	// A row imported with a pre-catalog status code.
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET status = 'pending' WHERE number = 'ORD-2000'").Error)

	counts, err := suite.repository.CountByStatus(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), counts["draft"])
	suite.Equal(int64(1), counts["pending"])
}

func (suite *OrderRepositoryIntegrationTestSuite) TestLegacyStatus_SurvivesRoundTrip() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	testOrder := suite.createTestOrder("ORD-5000")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET status = 'awaiting_approval' WHERE number = 'ORD-5000'").Error)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Status("awaiting_approval"), loaded.Status())
	suite.False(loaded.Status().IsKnown())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
