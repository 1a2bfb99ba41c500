package http

import (
	"log/slog"
	"net/http"
	"time"

	"cleaning/internal/core/application/usecases/commands"
	"cleaning/internal/core/application/usecases/queries"
	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"
	"cleaning/internal/realtime"

	"github.com/labstack/echo/v4"
)

// CommandHandlers bundles the command side of the API surface.
type CommandHandlers struct {
	CreateJob         commands.CreateJobCommandHandler
	AcceptOffer       commands.AcceptOfferCommandHandler
	MarkEnRoute       commands.MarkEnRouteCommandHandler
	MarkArrived       commands.MarkArrivedCommandHandler
	StartJob          commands.StartJobCommandHandler
	CompleteJob       commands.CompleteJobCommandHandler
	CancelJob         commands.CancelJobCommandHandler
	AddJobPhoto       commands.AddJobPhotoCommandHandler
	RequestExtraTime  commands.RequestExtraTimeCommandHandler
	ResolveExtraTime  commands.ResolveExtraTimeCommandHandler
	ApproveCompletion commands.ApproveCompletionCommandHandler
	OpenDispute       commands.OpenDisputeCommandHandler
	ResolveDispute    commands.ResolveDisputeCommandHandler
	RequestReschedule commands.RequestRescheduleCommandHandler
}

// QueryHandlers bundles the query side of the API surface.
type QueryHandlers struct {
	GetCleanerJobs   queries.GetCleanerJobsQueryHandler
	GetNotifications queries.GetNotificationsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
	hub      *realtime.Hub
	logger   *slog.Logger
}

// NewServer creates the HTTP server.
func NewServer(commandHandlers CommandHandlers, queryHandlers QueryHandlers, hub *realtime.Hub, logger *slog.Logger) (*Server, error) {
	if hub == nil {
		return nil, errs.NewValueIsRequiredError("hub")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
		hub:      hub,
		logger:   logger.With(slog.String("component", "http-server")),
	}, nil
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/jobs", s.CreateJob)
	api.GET("/jobs", s.GetCleanerJobs)
	api.GET("/notifications", s.GetNotifications)

	api.POST("/jobs/:id/accept", s.AcceptOffer)
	api.POST("/jobs/:id/en-route", s.MarkEnRoute)
	api.POST("/jobs/:id/arrive", s.MarkArrived)
	api.POST("/jobs/:id/start", s.StartJob)
	api.POST("/jobs/:id/complete", s.CompleteJob)
	api.POST("/jobs/:id/cancel", s.CancelJob)
	api.POST("/jobs/:id/photos", s.AddJobPhoto)
	api.POST("/jobs/:id/extra-time", s.RequestExtraTime)
	api.POST("/jobs/:id/extra-time/resolve", s.ResolveExtraTime)
	api.POST("/jobs/:id/approve", s.ApproveCompletion)
	api.POST("/jobs/:id/dispute", s.OpenDispute)
	api.POST("/jobs/:id/dispute/resolve", s.ResolveDispute)
	api.POST("/jobs/:id/reschedule", s.RequestReschedule)

	e.GET("/realtime/ws", s.RealtimeWS)
	e.GET("/realtime/sse", s.RealtimeSSE)
	e.GET("/health", s.Health)
}

// CreateJob handles POST /api/v1/jobs.
func (s *Server) CreateJob(ctx echo.Context) error {
	var req CreateJobRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return s.badRequest(ctx, "invalid clientId")
	}
	cleanerID, err := kernel.UUIDFromString(req.CleanerID)
	if err != nil {
		return s.badRequest(ctx, "invalid cleanerId")
	}
	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return s.fail(ctx, err)
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return s.badRequest(ctx, "scheduledAt must be RFC 3339")
	}

	jobID := kernel.NewUUID()
	cmd, err := commands.NewCreateJobCommand(
		jobID,
		clientID,
		cleanerID,
		req.Address,
		location,
		scheduledAt,
		req.ContractedDurationMinutes,
		req.HourlyRateCredits,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.commands.CreateJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateJobResponse{ID: jobID.String()})
}

// AcceptOffer handles POST /api/v1/jobs/:id/accept.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	jobID, actorID, ok := s.jobAndActor(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewAcceptOfferCommand(jobID, actorID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.AcceptOffer.Handle(ctx.Request().Context(), cmd)
	})
}

// MarkEnRoute handles POST /api/v1/jobs/:id/en-route.
func (s *Server) MarkEnRoute(ctx echo.Context) error {
	jobID, actorID, ok := s.jobAndActor(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewMarkEnRouteCommand(jobID, actorID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.MarkEnRoute.Handle(ctx.Request().Context(), cmd)
	})
}

// MarkArrived handles POST /api/v1/jobs/:id/arrive.
func (s *Server) MarkArrived(ctx echo.Context) error {
	jobID, actorID, fix, ok := s.jobActorAndFix(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewMarkArrivedCommand(jobID, actorID, fix)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.MarkArrived.Handle(ctx.Request().Context(), cmd)
	})
}

// StartJob handles POST /api/v1/jobs/:id/start.
func (s *Server) StartJob(ctx echo.Context) error {
	jobID, actorID, fix, ok := s.jobActorAndFix(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewStartJobCommand(jobID, actorID, fix)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.StartJob.Handle(ctx.Request().Context(), cmd)
	})
}

// CompleteJob handles POST /api/v1/jobs/:id/complete.
func (s *Server) CompleteJob(ctx echo.Context) error {
	jobID, actorID, fix, ok := s.jobActorAndFix(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewCompleteJobCommand(jobID, actorID, fix)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.CompleteJob.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelJob handles POST /api/v1/jobs/:id/cancel.
func (s *Server) CancelJob(ctx echo.Context) error {
	jobID, ok := s.jobID(ctx)
	if !ok {
		return nil
	}

	var req CancelRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return s.badRequest(ctx, "invalid actorId")
	}

	cmd, err := commands.NewCancelJobCommand(jobID, actorID, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.CancelJob.Handle(ctx.Request().Context(), cmd)
	})
}

// AddJobPhoto handles POST /api/v1/jobs/:id/photos.
func (s *Server) AddJobPhoto(ctx echo.Context) error {
	jobID, ok := s.jobID(ctx)
	if !ok {
		return nil
	}

	var req PhotoRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return s.badRequest(ctx, "invalid actorId")
	}

	cmd, err := commands.NewAddJobPhotoCommand(jobID, actorID, req.Kind)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.AddJobPhoto.Handle(ctx.Request().Context(), cmd)
	})
}

// RequestExtraTime handles POST /api/v1/jobs/:id/extra-time.
func (s *Server) RequestExtraTime(ctx echo.Context) error {
	jobID, ok := s.jobID(ctx)
	if !ok {
		return nil
	}

	var req ExtraTimeRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return s.badRequest(ctx, "invalid actorId")
	}

	cmd, err := commands.NewRequestExtraTimeCommand(jobID, actorID, req.Minutes)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.RequestExtraTime.Handle(ctx.Request().Context(), cmd)
	})
}

// ResolveExtraTime handles POST /api/v1/jobs/:id/extra-time/resolve.
func (s *Server) ResolveExtraTime(ctx echo.Context) error {
	jobID, ok := s.jobID(ctx)
	if !ok {
		return nil
	}

	var req ResolveExtraTimeRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return s.badRequest(ctx, "invalid actorId")
	}

	cmd, err := commands.NewResolveExtraTimeCommand(jobID, actorID, req.Approved, req.Minutes)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.ResolveExtraTime.Handle(ctx.Request().Context(), cmd)
	})
}

// ApproveCompletion handles POST /api/v1/jobs/:id/approve.
func (s *Server) ApproveCompletion(ctx echo.Context) error {
	jobID, actorID, ok := s.jobAndActor(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewApproveCompletionCommand(jobID, actorID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.ApproveCompletion.Handle(ctx.Request().Context(), cmd)
	})
}

// OpenDispute handles POST /api/v1/jobs/:id/dispute.
func (s *Server) OpenDispute(ctx echo.Context) error {
	jobID, ok := s.jobID(ctx)
	if !ok {
		return nil
	}

	var req DisputeRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return s.badRequest(ctx, "invalid actorId")
	}

	cmd, err := commands.NewOpenDisputeCommand(jobID, actorID, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.OpenDispute.Handle(ctx.Request().Context(), cmd)
	})
}

// ResolveDispute handles POST /api/v1/jobs/:id/dispute/resolve.
func (s *Server) ResolveDispute(ctx echo.Context) error {
	jobID, ok := s.jobID(ctx)
	if !ok {
		return nil
	}

	var req ResolveDisputeRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return s.badRequest(ctx, "invalid actorId")
	}

	cmd, err := commands.NewResolveDisputeCommand(jobID, actorID, req.Escalate)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.ResolveDispute.Handle(ctx.Request().Context(), cmd)
	})
}

// RequestReschedule handles POST /api/v1/jobs/:id/reschedule.
func (s *Server) RequestReschedule(ctx echo.Context) error {
	jobID, actorID, ok := s.jobAndActor(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewRequestRescheduleCommand(jobID, actorID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.runTransition(ctx, func() error {
		return s.commands.RequestReschedule.Handle(ctx.Request().Context(), cmd)
	})
}

// GetCleanerJobs handles GET /api/v1/jobs?cleanerId=.
func (s *Server) GetCleanerJobs(ctx echo.Context) error {
	cleanerID, err := kernel.UUIDFromString(ctx.QueryParam("cleanerId"))
	if err != nil {
		return s.badRequest(ctx, "invalid cleanerId")
	}

	query, err := queries.NewGetCleanerJobsQuery(cleanerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	rows, err := s.queries.GetCleanerJobs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]JobBoardEntry, len(rows))
	for i, row := range rows {
		response[i] = JobBoardEntry{
			ID:                        row.ID.String(),
			Address:                   row.Address,
			ScheduledAt:               row.ScheduledAt,
			State:                     row.State,
			SubState:                  row.SubState,
			ContractedDurationMinutes: row.ContractedDurationMinutes,
			BillableMinutes:           row.BillableMinutes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetNotifications handles GET /api/v1/notifications?userId=&since=.
// It backs both the in-app feed and the polling fallback of the realtime
// client.
func (s *Server) GetNotifications(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.QueryParam("userId"))
	if err != nil {
		return s.badRequest(ctx, "invalid userId")
	}

	var since time.Time
	if raw := ctx.QueryParam("since"); raw != "" {
		since, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return s.badRequest(ctx, "since must be RFC 3339")
		}
	}

	query, err := queries.NewGetNotificationsQuery(userID, since)
	if err != nil {
		return s.fail(ctx, err)
	}

	rows, err := s.queries.GetNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]NotificationEntry, len(rows))
	for i, row := range rows {
		response[i] = NotificationEntry{
			ID:        row.ID.String(),
			JobID:     row.JobID.String(),
			Kind:      row.Kind,
			Title:     row.Title,
			Body:      row.Body,
			Urgent:    row.Urgent,
			CreatedAt: row.CreatedAt,
			Read:      row.Read,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RealtimeWS handles GET /realtime/ws.
func (s *Server) RealtimeWS(ctx echo.Context) error {
	if err := s.hub.ServeWS(ctx.Response(), ctx.Request()); err != nil {
		s.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return s.badRequest(ctx, "websocket upgrade failed")
	}
	return nil
}

// RealtimeSSE handles GET /realtime/sse?userEmail=.
func (s *Server) RealtimeSSE(ctx echo.Context) error {
	userEmail := ctx.QueryParam("userEmail")
	if userEmail == "" {
		return s.badRequest(ctx, "userEmail is required")
	}
	return s.hub.ServeSSE(ctx.Response(), ctx.Request(), userEmail)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) runTransition(ctx echo.Context, handle func() error) error {
	if err := handle(); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) jobID(ctx echo.Context) (kernel.UUID, bool) {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		_ = s.badRequest(ctx, "invalid job id")
		return kernel.UUID{}, false
	}
	return jobID, true
}

func (s *Server) jobAndActor(ctx echo.Context) (kernel.UUID, kernel.UUID, bool) {
	jobID, ok := s.jobID(ctx)
	if !ok {
		return kernel.UUID{}, kernel.UUID{}, false
	}

	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		_ = s.badRequest(ctx, "invalid request body")
		return kernel.UUID{}, kernel.UUID{}, false
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		_ = s.badRequest(ctx, "invalid actorId")
		return kernel.UUID{}, kernel.UUID{}, false
	}

	return jobID, actorID, true
}

func (s *Server) jobActorAndFix(ctx echo.Context) (kernel.UUID, kernel.UUID, kernel.GeoPoint, bool) {
	jobID, ok := s.jobID(ctx)
	if !ok {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, false
	}

	var req LocationRequest
	if err := ctx.Bind(&req); err != nil {
		_ = s.badRequest(ctx, "invalid request body")
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, false
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		_ = s.badRequest(ctx, "invalid actorId")
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, false
	}

	fix, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		_ = s.fail(ctx, err)
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, false
	}

	return jobID, actorID, fix, true
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", slog.Any("error", err))
		return ctx.JSON(status, ErrorResponse{Code: status, Message: "internal error"})
	}
	return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}
