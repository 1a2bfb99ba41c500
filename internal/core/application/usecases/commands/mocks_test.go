package commands_test

import (
	"context"
	"testing"
	"time"

	"cleaning/internal/core/application/usecases/commands"
	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/job"
	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetOfferedBefore(ctx context.Context, cutoff time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetAssignedStartingBetween(ctx context.Context, from, to time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

type MockJobUoW struct{ mock.Mock }

func (m *MockJobUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}

// MockEventPublisher records published events for assertions.
type MockEventPublisher struct {
	published []events.DomainEvent
}

func (m *MockEventPublisher) Publish(_ context.Context, event events.DomainEvent) error {
	m.published = append(m.published, event)
	return nil
}

func (m *MockEventPublisher) kinds() []events.Kind {
	kinds := make([]events.Kind, 0, len(m.published))
	for _, e := range m.published {
		kinds = append(kinds, e.Kind())
	}
	return kinds
}

// Aggregate builders.

type jobBuilder struct {
	clientID  kernel.UUID
	cleanerID kernel.UUID
	location  kernel.GeoPoint
	scheduled time.Time
}

func newJobBuilder(t *testing.T) *jobBuilder {
	t.Helper()
	location, err := kernel.NewGeoPoint(55.7558, 37.6173)
	require.NoError(t, err)
	return &jobBuilder{
		clientID:  kernel.NewUUID(),
		cleanerID: kernel.NewUUID(),
		location:  location,
		scheduled: time.Now().UTC().Add(24 * time.Hour),
	}
}

// insideFix is ~100m from the job location.
func (b *jobBuilder) insideFix(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(55.7567, 37.6173)
	require.NoError(t, err)
	return p
}

// outsideFix is several kilometres from the job location.
func (b *jobBuilder) outsideFix(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(55.8000, 37.7000)
	require.NoError(t, err)
	return p
}

func (b *jobBuilder) build(t *testing.T, state job.State) *job.Job {
	t.Helper()

	aggregate, err := job.NewJob(kernel.NewUUID(), b.clientID, b.cleanerID,
		"12 Tverskaya St, apt 4", b.location, b.scheduled, 120, 50)
	require.NoError(t, err)

	now := time.Now().UTC()
	fix := b.insideFix(t)
	steps := []struct {
		state job.State
		do    func() error
	}{
		{job.Assigned, func() error { return aggregate.Accept(b.cleanerID, now) }},
		{job.EnRoute, func() error { return aggregate.MarkEnRoute(b.cleanerID, now) }},
		{job.Arrived, func() error { return aggregate.MarkArrived(b.cleanerID, now, fix) }},
		{job.InProgress, func() error { return aggregate.Start(b.cleanerID, now, fix) }},
		{job.AwaitingClientReview, func() error { return aggregate.Complete(b.cleanerID, now.Add(2*time.Hour), fix) }},
	}

	if state == job.Offered {
		return aggregate
	}
	for _, step := range steps {
		require.NoError(t, step.do())
		if step.state == state {
			return aggregate
		}
	}
	t.Fatalf("cannot build job in state %s", state)
	return nil
}

// expectTransaction wires the standard Begin/JobRepository/Get flow.
func expectTransaction(uow *MockJobUoW, repo *MockJobRepository, ctx context.Context, aggregate *job.Job) {
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JobRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, mock.Anything).Return(aggregate, nil).Once()
}
