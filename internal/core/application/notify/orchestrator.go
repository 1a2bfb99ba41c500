package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cleaning/internal/core/application/eventbus"
	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/core/domain/model/notification"
	"cleaning/internal/core/ports"
	"cleaning/internal/metrics"
	"cleaning/internal/pkg/errs"
)

// Orchestrator turns domain events into user notifications. For every event
// it resolves the recipients, renders the message, stores the in-app record,
// pushes to live sessions, and dispatches email, SMS, and push through the
// gateway ports.
//
// Channel preferences gate ordinary events. Urgent events (extra time
// requests, cancellations) always go out over SMS and push: the recipient
// must react while the visit is still running. Live session delivery is
// never preference-gated.
//
// Every channel dispatch is isolated: a provider failure is logged and
// counted, and the remaining channels still go out.
type Orchestrator struct {
	uowFactory ports.UnitOfWorkFactory
	directory  ports.RecipientDirectory
	email      ports.EmailGateway
	sms        ports.SMSGateway
	push       ports.PushGateway
	live       ports.LivePublisher
	collector  *metrics.Collector
	logger     *slog.Logger
}

// NewOrchestrator creates a notification orchestrator.
func NewOrchestrator(
	uowFactory ports.UnitOfWorkFactory,
	directory ports.RecipientDirectory,
	email ports.EmailGateway,
	sms ports.SMSGateway,
	push ports.PushGateway,
	live ports.LivePublisher,
	collector *metrics.Collector,
	logger *slog.Logger,
) (*Orchestrator, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if directory == nil {
		return nil, errs.NewValueIsRequiredError("directory")
	}
	if email == nil {
		return nil, errs.NewValueIsRequiredError("email")
	}
	if sms == nil {
		return nil, errs.NewValueIsRequiredError("sms")
	}
	if push == nil {
		return nil, errs.NewValueIsRequiredError("push")
	}
	if live == nil {
		return nil, errs.NewValueIsRequiredError("live")
	}
	if collector == nil {
		return nil, errs.NewValueIsRequiredError("collector")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Orchestrator{
		uowFactory: uowFactory,
		directory:  directory,
		email:      email,
		sms:        sms,
		push:       push,
		live:       live,
		collector:  collector,
		logger:     logger,
	}, nil
}

// RegisterOn subscribes the orchestrator to every event kind on the bus.
func (o *Orchestrator) RegisterOn(bus *eventbus.Bus) error {
	for _, kind := range events.AllKinds() {
		if err := bus.Subscribe(kind, o.Handle); err != nil {
			return err
		}
	}
	return nil
}

// Handle processes one domain event: one notification per recipient, fanned
// out over the recipient's enabled channels.
func (o *Orchestrator) Handle(ctx context.Context, event events.DomainEvent) error {
	var failures []error
	for _, userID := range recipients(event) {
		if err := o.notifyUser(ctx, event, userID); err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

// recipients resolves who a given event is for: the counterpart of whoever
// initiated it, or both participants when nobody did.
func recipients(event events.DomainEvent) []kernel.UUID {
	switch e := event.(type) {
	case events.JobCancelled:
		if e.IsSystemInitiated() {
			// Nobody acted; both the client and the cleaner are affected.
			return []kernel.UUID{event.ClientID(), event.CleanerID()}
		}
		return counterpart(e.ActorID(), event)
	case events.RescheduleRequested:
		return counterpart(e.ActorID(), event)
	case events.DisputeResolved:
		// Resolution is an operator decision; both sides hear about it.
		return []kernel.UUID{event.ClientID(), event.CleanerID()}
	}

	switch event.Kind() {
	case events.KindJobOffered, events.KindExtraTimeApproved, events.KindExtraTimeDenied,
		events.KindClientApproved, events.KindDisputeOpened, events.KindVisitReminderDue:
		return []kernel.UUID{event.CleanerID()}
	default:
		// Cleaner-initiated lifecycle progress goes to the client.
		return []kernel.UUID{event.ClientID()}
	}
}

func counterpart(actorID kernel.UUID, event events.DomainEvent) []kernel.UUID {
	if actorID.IsEqual(event.ClientID()) {
		return []kernel.UUID{event.CleanerID()}
	}
	return []kernel.UUID{event.ClientID()}
}

func (o *Orchestrator) notifyUser(ctx context.Context, event events.DomainEvent, userID kernel.UUID) error {
	kind := string(event.Kind())
	logger := o.logger.With(
		slog.String("kind", kind),
		slog.String("jobId", event.JobID().String()),
		slog.String("userId", userID.String()),
	)

	recipient, err := o.directory.GetRecipient(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			logger.Warn("notification recipient unknown, skipping")
			return nil
		}
		return fmt.Errorf("resolve recipient: %w", err)
	}

	title, body := render(event)
	record, err := notification.NewNotification(
		kernel.NewUUID(), recipient.UserID, event.JobID(),
		kind, title, body, event.IsUrgent(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("build notification: %w", err)
	}

	var failures []error
	prefs := recipient.Preference
	urgent := event.IsUrgent()

	if prefs.Allows(notification.ChannelInApp) {
		if err := o.storeRecord(ctx, record); err != nil {
			o.collector.RecordDispatch(notification.ChannelInApp.String(), metrics.OutcomeFailed)
			logger.Error("in-app notification store failed", slog.Any("error", err))
			failures = append(failures, err)
		} else {
			o.collector.RecordNotificationCreated(kind)
			o.collector.RecordDispatch(notification.ChannelInApp.String(), metrics.OutcomeDelivered)
		}
	} else {
		o.collector.RecordDispatch(notification.ChannelInApp.String(), metrics.OutcomeSkipped)
	}

	// Live sessions always see fresh state; this is a UI sync, not a
	// preference-gated channel.
	if err := o.live.PublishToUser(ctx, recipient.Email, record); err != nil {
		logger.Warn("live publish failed", slog.Any("error", err))
	} else {
		o.collector.RecordLivePush()
	}

	if prefs.Allows(notification.ChannelEmail) && recipient.Email != "" {
		if err := o.email.Send(ctx, recipient.Email, title, body); err != nil {
			o.collector.RecordDispatch(notification.ChannelEmail.String(), metrics.OutcomeFailed)
			logger.Error("email dispatch failed",
				slog.String("to", recipient.Email), slog.Any("error", err))
			failures = append(failures, err)
		} else {
			o.collector.RecordDispatch(notification.ChannelEmail.String(), metrics.OutcomeDelivered)
		}
	} else {
		o.collector.RecordDispatch(notification.ChannelEmail.String(), metrics.OutcomeSkipped)
	}

	if urgent || prefs.Allows(notification.ChannelSMS) {
		if err := recipient.Phone.Validate(); err != nil {
			o.collector.RecordDispatch(notification.ChannelSMS.String(), metrics.OutcomeSkipped)
			logger.Warn("sms skipped, no valid phone number")
		} else if err := o.sms.Send(ctx, recipient.Phone, title+": "+body); err != nil {
			o.collector.RecordDispatch(notification.ChannelSMS.String(), metrics.OutcomeFailed)
			logger.Error("sms dispatch failed", slog.Any("error", err))
			failures = append(failures, err)
		} else {
			o.collector.RecordDispatch(notification.ChannelSMS.String(), metrics.OutcomeDelivered)
		}
	} else {
		o.collector.RecordDispatch(notification.ChannelSMS.String(), metrics.OutcomeSkipped)
	}

	if urgent || prefs.Allows(notification.ChannelPush) {
		if len(recipient.DeviceTokens) == 0 {
			o.collector.RecordDispatch(notification.ChannelPush.String(), metrics.OutcomeSkipped)
		} else {
			data := map[string]string{
				"jobId": event.JobID().String(),
				"kind":  kind,
			}
			if err := o.push.Send(ctx, recipient.DeviceTokens, title, body, data); err != nil {
				o.collector.RecordDispatch(notification.ChannelPush.String(), metrics.OutcomeFailed)
				logger.Error("push dispatch failed", slog.Any("error", err))
				failures = append(failures, err)
			} else {
				o.collector.RecordDispatch(notification.ChannelPush.String(), metrics.OutcomeDelivered)
			}
		}
	} else {
		o.collector.RecordDispatch(notification.ChannelPush.String(), metrics.OutcomeSkipped)
	}

	return errors.Join(failures...)
}

func (o *Orchestrator) storeRecord(ctx context.Context, record *notification.Notification) error {
	uow := o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.NotificationRepository().Add(ctx, record); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	return uow.Commit(ctx)
}
