package cmd

import (
	"log/slog"

	adapterhttp "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/email"
	"orderdesk/internal/adapters/out/postgres"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/jobs"
	"orderdesk/internal/pkg/signing"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. Handlers are built on
// demand; each one gets its own unit-of-work factory closure.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	signer     *signing.TrackingLinkSigner
	logger     *slog.Logger
}

// NewCompositionRoot builds the root from configuration and an open
// database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	signer, err := signing.NewTrackingLinkSigner(config.SigningSecret, 0)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		signer:     signer,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateApproveEstimateCommandHandler() commands.ApproveEstimateCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveEstimateCommandHandler(f)
}

func (c *CompositionRoot) CreateRotateTrackingTokenCommandHandler() commands.RotateTrackingTokenCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRotateTrackingTokenCommandHandler(f)
}

func (c *CompositionRoot) CreateMigrateStatusesCommandHandler() commands.MigrateStatusesCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMigrateStatusesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderTimelineQueryHandler() queries.GetOrderTimelineQueryHandler {
	return queries.NewGetOrderTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusDistributionQueryHandler() queries.GetStatusDistributionQueryHandler {
	return queries.NewGetStatusDistributionQueryHandler(c.gormDB)
}

// CreateOrderReader returns a repository bound to the main connection for
// read-only lookups outside any transaction.
func (c *CompositionRoot) CreateOrderReader() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateNotifier() ports.Notifier {
	return email.NewSMTPNotifier(
		c.config.SMTPHost,
		c.config.SMTPPort,
		c.config.SMTPUser,
		c.config.SMTPPassword,
		c.config.EmailFrom,
		c.config.TrackingBaseURL,
		c.signer,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	outbox := c.uowFactory.Create().NotificationOutbox()
	return jobs.NewJobManager(outbox, c.CreateNotifier(), c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateApproveEstimateCommandHandler(),
		c.CreateRotateTrackingTokenCommandHandler(),
		c.CreateGetOrderTimelineQueryHandler(),
		c.CreateGetStatusDistributionQueryHandler(),
		c.CreateOrderReader(),
		c.signer,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
