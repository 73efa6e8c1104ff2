package postgres_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres"
	"orderdesk/internal/adapters/out/postgres/eventrepo"
	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/adapters/out/postgres/outboxrepo"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&eventrepo.EventDTO{},
		&outboxrepo.NotificationDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_events, notification_outbox").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) statusChange(
	uow ports.UnitOfWork,
) (*order.Order, *order.Event) {
	ctx := context.Background()

	testOrder, err := order.NewOrder(kernel.NewUUID(), "ORD-9001", "manager")
	suite.Require().NoError(err)
	testOrder.SetCustomerEmail("customer@example.com")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	event, err := testOrder.RequestStatusChange(
		order.StatusEstimateSent, "manager", "", order.VisibilityCustomer)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))
	suite.Require().NoError(uow.OrderEventRepository().Add(ctx, event))

	notification := &ports.Notification{
		ID:          kernel.NewUUID(),
		OrderID:     testOrder.ID(),
		OrderNumber: testOrder.Number(),
		Recipient:   testOrder.CustomerEmail(),
		OldStatus:   *event.OldStatus(),
		NewStatus:   *event.NewStatus(),
		CreatedAt:   time.Now().UTC(),
	}
	suite.Require().NoError(uow.NotificationOutbox().Enqueue(ctx, notification))

	return testOrder, event
}

func (suite *UnitOfWorkIntegrationTestSuite) rowCounts() (orders, events, outbox int64) {
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orders).Error)
	suite.Require().NoError(suite.db.Model(&eventrepo.EventDTO{}).Count(&events).Error)
	suite.Require().NoError(suite.db.Model(&outboxrepo.NotificationDTO{}).Count(&outbox).Error)
	return orders, events, outbox
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAllThreeWrites() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder, _ := suite.statusChange(uow)

	suite.Require().NoError(uow.Commit(ctx))

	orders, events, outbox := suite.rowCounts()
	suite.Equal(int64(1), orders)
	suite.Equal(int64(1), events)
	suite.Equal(int64(1), outbox)

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusEstimateSent, loaded.Status())
	suite.Equal(2, loaded.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllThreeWrites() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.statusChange(uow)

	suite.Require().NoError(uow.Rollback(ctx))

	orders, events, outbox := suite.rowCounts()
	suite.Equal(int64(0), orders)
	suite.Equal(int64(0), events)
	suite.Equal(int64(0), outbox)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutBegin_UseMainConnection() {
	ctx := context.Background()

	uow := suite.factory.Create()

	testOrder, err := order.NewOrder(kernel.NewUUID(), "ORD-9002", "manager")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	// Visible immediately, no commit needed.
	orders, _, _ := suite.rowCounts()
	suite.Equal(int64(1), orders)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()

	err := uow.Commit(context.Background())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_PendingBatchAndMarkSent() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.statusChange(uow)
	suite.Require().NoError(uow.Commit(ctx))

	outbox := outboxrepo.NewGormNotificationOutbox(suite.db)

	pending, err := outbox.PendingBatch(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("customer@example.com", pending[0].Recipient)

	suite.Require().NoError(outbox.MarkSent(ctx, pending[0].ID))

	pending, err = outbox.PendingBatch(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
