package commands_test

import (
	"testing"

	"cleaning/internal/core/application/usecases/commands"
	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func requestedJob(t *testing.T, builder *jobBuilder, minutes int) *job.Job {
	t.Helper()
	aggregate := builder.build(t, job.InProgress)
	require.NoError(t, aggregate.RequestExtraTime(builder.cleanerID, minutes))
	return aggregate
}

func TestResolveExtraTimeCommandHandler_Handle_Approved(t *testing.T) {
	ctx := t.Context()
	builder := newJobBuilder(t)
	aggregate := requestedJob(t, builder, 60)

	// Client grants less than the cleaner asked for.
	cmd, err := commands.NewResolveExtraTimeCommand(aggregate.ID(), builder.clientID, true, 30)
	require.NoError(t, err)

	repo := new(MockJobRepository)
	uow := new(MockJobUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, mock.Anything).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewResolveExtraTimeCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 30, aggregate.ApprovedExtraMinutes())
	assert.Equal(t, job.SubStateNone, aggregate.SubState())
	require.Equal(t, []events.Kind{events.KindExtraTimeApproved}, publisher.kinds())
	approved := publisher.published[0].(events.ExtraTimeApproved)
	assert.Equal(t, 30, approved.ApprovedMinutes())
}

func TestResolveExtraTimeCommandHandler_Handle_Denied(t *testing.T) {
	ctx := t.Context()
	builder := newJobBuilder(t)
	aggregate := requestedJob(t, builder, 60)
	cmd, err := commands.NewResolveExtraTimeCommand(aggregate.ID(), builder.clientID, false, 0)
	require.NoError(t, err)

	repo := new(MockJobRepository)
	uow := new(MockJobUoW)
	expectTransaction(uow, repo, ctx, aggregate)
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewResolveExtraTimeCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, aggregate.ApprovedExtraMinutes())
	assert.Equal(t, []events.Kind{events.KindExtraTimeDenied}, publisher.kinds())
}

func TestResolveExtraTimeCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()
	builder := newJobBuilder(t)
	aggregate := builder.build(t, job.InProgress)
	cmd, err := commands.NewResolveExtraTimeCommand(aggregate.ID(), builder.clientID, true, 30)
	require.NoError(t, err)

	repo := new(MockJobRepository)
	uow := new(MockJobUoW)
	expectTransaction(uow, repo, ctx, aggregate)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewResolveExtraTimeCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, job.ErrNoExtraTimePending)
	assert.Empty(t, publisher.kinds())
}

func TestNewResolveExtraTimeCommand_ApprovalNeedsMinutes(t *testing.T) {
	builder := newJobBuilder(t)
	_, err := commands.NewResolveExtraTimeCommand(builder.clientID, builder.clientID, true, 0)
	require.Error(t, err)
}
