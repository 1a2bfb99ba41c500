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

func TestMarkArrivedCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	builder := newJobBuilder(t)
	aggregate := builder.build(t, job.EnRoute)
	cmd, err := commands.NewMarkArrivedCommand(aggregate.ID(), builder.cleanerID, builder.insideFix(t))
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

	h := commands.NewMarkArrivedCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, job.Arrived, aggregate.State())
	assert.Equal(t, []events.Kind{events.KindCleanerArrived}, publisher.kinds())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestMarkArrivedCommandHandler_Handle_OutsideGeofence(t *testing.T) {
	ctx := t.Context()
	builder := newJobBuilder(t)
	aggregate := builder.build(t, job.EnRoute)
	cmd, err := commands.NewMarkArrivedCommand(aggregate.ID(), builder.cleanerID, builder.outsideFix(t))
	require.NoError(t, err)

	repo := new(MockJobRepository)
	uow := new(MockJobUoW)
	expectTransaction(uow, repo, ctx, aggregate)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewMarkArrivedCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, job.ErrOutsideGeofence)

	var geoErr *job.GeofenceError
	require.ErrorAs(t, err, &geoErr)
	assert.Greater(t, geoErr.DistanceMeters, job.GeofenceRadiusMeters)

	// Rejected check-in persists and publishes nothing.
	assert.Equal(t, job.EnRoute, aggregate.State())
	assert.Empty(t, publisher.kinds())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
