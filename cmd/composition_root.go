package cmd

import (
	"log/slog"

	httpserver "cleaning/internal/adapters/in/http"
	"cleaning/internal/adapters/out/gateways"
	"cleaning/internal/adapters/out/postgres"
	"cleaning/internal/adapters/out/postgres/settingsrepo"
	"cleaning/internal/core/application/eventbus"
	"cleaning/internal/core/application/notify"
	"cleaning/internal/core/application/usecases/commands"
	"cleaning/internal/core/application/usecases/queries"
	"cleaning/internal/jobs"
	"cleaning/internal/metrics"
	"cleaning/internal/realtime"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, the event bus and the use case handlers.
// All shared infrastructure (DB, metrics, hub, bus) is created once here;
// handlers are created on demand from it.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	collector  *metrics.Collector
	bus        *eventbus.Bus
	hub        *realtime.Hub
	logger     *slog.Logger
}

// NewCompositionRoot builds the shared infrastructure for the application.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	bus, err := eventbus.NewBus(collector, logger)
	if err != nil {
		return nil, err
	}

	hub, err := realtime.NewHub(collector, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		collector:  collector,
		bus:        bus,
		hub:        hub,
		logger:     logger,
	}, nil
}

// Registry exposes the metrics registry for the /metrics endpoint.
func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

// Hub exposes the realtime hub for the WebSocket and SSE endpoints.
func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

func (c *CompositionRoot) jobUoWFactory() commands.JobUoWFactory {
	return FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
}

// WireNotifications creates the notification orchestrator and subscribes it
// to every event kind on the bus.
func (c *CompositionRoot) WireNotifications() error {
	email, err := gateways.NewHTTPEmailGateway(
		c.config.EmailEndpoint, c.config.EmailAPIKey, c.config.EmailFrom,
		c.config.EmailMockMode, c.logger)
	if err != nil {
		return err
	}

	sms, err := gateways.NewHTTPSMSGateway(
		c.config.SMSEndpoint, c.config.SMSAPIKey, c.config.SMSSender,
		c.config.SMSMockMode, c.logger)
	if err != nil {
		return err
	}

	push, err := gateways.NewHTTPPushGateway(
		c.config.PushEndpoint, c.config.PushAPIKey,
		c.config.PushMockMode, c.logger)
	if err != nil {
		return err
	}

	orchestrator, err := notify.NewOrchestrator(
		c.uowFactory,
		settingsrepo.NewGormRecipientDirectory(c.gormDB),
		email, sms, push,
		c.hub,
		c.collector,
		c.logger,
	)
	if err != nil {
		return err
	}

	return orchestrator.RegisterOn(c.bus)
}

// CreateJobManager wires the cron sweeps over the job board.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expireHandler := commands.NewExpireStaleOffersCommandHandler(
		c.jobUoWFactory(), c.bus, c.config.OfferExpiryWindow)
	remindHandler := commands.NewRemindUpcomingVisitsCommandHandler(
		c.jobUoWFactory(), c.bus, c.config.VisitReminderWindow)
	return jobs.NewJobManager(expireHandler, remindHandler, c.logger)
}

// CreateHTTPServer wires every command and query handler into the API server.
func (c *CompositionRoot) CreateHTTPServer() (*httpserver.Server, error) {
	factory := c.jobUoWFactory()

	return httpserver.NewServer(
		httpserver.CommandHandlers{
			CreateJob:         commands.NewCreateJobCommandHandler(factory, c.bus),
			AcceptOffer:       commands.NewAcceptOfferCommandHandler(factory, c.bus),
			MarkEnRoute:       commands.NewMarkEnRouteCommandHandler(factory, c.bus),
			MarkArrived:       commands.NewMarkArrivedCommandHandler(factory, c.bus),
			StartJob:          commands.NewStartJobCommandHandler(factory, c.bus),
			CompleteJob:       commands.NewCompleteJobCommandHandler(factory, c.bus),
			CancelJob:         commands.NewCancelJobCommandHandler(factory, c.bus),
			AddJobPhoto:       commands.NewAddJobPhotoCommandHandler(factory, c.bus),
			RequestExtraTime:  commands.NewRequestExtraTimeCommandHandler(factory, c.bus),
			ResolveExtraTime:  commands.NewResolveExtraTimeCommandHandler(factory, c.bus),
			ApproveCompletion: commands.NewApproveCompletionCommandHandler(factory, c.bus),
			OpenDispute:       commands.NewOpenDisputeCommandHandler(factory, c.bus),
			ResolveDispute:    commands.NewResolveDisputeCommandHandler(factory, c.bus),
			RequestReschedule: commands.NewRequestRescheduleCommandHandler(factory, c.bus),
		},
		httpserver.QueryHandlers{
			GetCleanerJobs:   queries.NewGetCleanerJobsQueryHandler(c.gormDB),
			GetNotifications: queries.NewGetNotificationsQueryHandler(c.gormDB),
		},
		c.hub,
		c.logger,
	)
}

// FuncJobUoWFactory adapts a closure to the commands.JobUoWFactory interface.
type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}
