package commands_test

import (
	"errors"
	"testing"
	"time"

	"cleaning/internal/core/application/usecases/commands"
	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	location, err := kernel.NewGeoPoint(55.7558, 37.6173)
	require.NoError(t, err)
	cmd, err := commands.NewCreateJobCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 Tverskaya St", location, time.Now().UTC().Add(24*time.Hour), 120, 50)
	require.NoError(t, err)

	repo := new(MockJobRepository)
	uow := new(MockJobUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*job.Job")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateJobCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []events.Kind{events.KindJobOffered}, publisher.kinds())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateJobCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateJobCommand{} // not constructed properly
	factory := new(MockJobUoWFactory)
	h := commands.NewCreateJobCommandHandler(factory, new(MockEventPublisher))

	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateJobCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	location, err := kernel.NewGeoPoint(55.7558, 37.6173)
	require.NoError(t, err)
	cmd, err := commands.NewCreateJobCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 Tverskaya St", location, time.Now().UTC().Add(24*time.Hour), 120, 50)
	require.NoError(t, err)

	repo := new(MockJobRepository)
	uow := new(MockJobUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*job.Job")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateJobCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Empty(t, publisher.kinds())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
