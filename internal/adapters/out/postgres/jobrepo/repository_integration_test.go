package jobrepo_test

import (
	"context"
	"testing"
	"time"

	"cleaning/internal/adapters/out/postgres/jobrepo"
	"cleaning/internal/core/domain/model/job"
	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// JobRepositoryIntegrationTestSuite verifies persistence behavior against a
// real PostgreSQL container.
type JobRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *jobrepo.GormJobRepository
	tracker    *MockAggregateTracker
}

func (suite *JobRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&jobrepo.JobDTO{}))
}

func (suite *JobRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE jobs").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = jobrepo.NewGormJobRepository(suite.db, suite.tracker)
}

func (suite *JobRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *JobRepositoryIntegrationTestSuite) newJob(scheduledAt time.Time) *job.Job {
	location, err := kernel.NewGeoPoint(55.7558, 37.6173)
	suite.Require().NoError(err)

	aggregate, err := job.NewJob(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"12 Arbat St, apt 7",
		location,
		scheduledAt,
		120,
		600,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *JobRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.newJob(time.Now().UTC().Add(24 * time.Hour).Truncate(time.Microsecond))

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(aggregate.ID().IsEqual(loaded.ID()))
	suite.Equal(job.Offered, loaded.State())
	suite.Equal(aggregate.Address(), loaded.Address())
	suite.Equal(aggregate.ContractedDurationMinutes(), loaded.ContractedDurationMinutes())
	suite.Equal(aggregate.HourlyRateCredits(), loaded.HourlyRateCredits())
	suite.True(aggregate.ScheduledAt().Equal(loaded.ScheduledAt()))

	isEqual, err := aggregate.Location().IsEqual(loaded.Location())
	suite.Require().NoError(err)
	suite.True(isEqual)
}

func (suite *JobRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()
	aggregate := suite.newJob(time.Now().UTC().Add(24 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.Accept(aggregate.CleanerID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(job.Assigned, loaded.State())
	suite.NotNil(loaded.AssignedAt())
	suite.Equal(aggregate.Version()+1, loaded.Version())
}

func (suite *JobRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	aggregate := suite.newJob(time.Now().UTC().Add(24 * time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// First writer wins.
	first, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(first.Accept(first.CleanerID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// Second writer still holds the originally loaded version and must lose.
	suite.Require().NoError(aggregate.Cancel(aggregate.ClientID(), time.Now().UTC(), "client changed plans"))
	err = suite.repository.Update(ctx, aggregate)
	suite.Require().ErrorIs(err, errs.ErrVersionConflict)
}

func (suite *JobRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *JobRepositoryIntegrationTestSuite) TestGetOfferedBefore_FiltersStateAndCutoff() {
	ctx := context.Background()
	now := time.Now().UTC()

	stale := suite.newJob(now.Add(10 * time.Minute))
	fresh := suite.newJob(now.Add(3 * time.Hour))
	accepted := suite.newJob(now.Add(10 * time.Minute))
	suite.Require().NoError(accepted.Accept(accepted.CleanerID(), now))

	for _, aggregate := range []*job.Job{stale, fresh, accepted} {
		suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	}

	found, err := suite.repository.GetOfferedBefore(ctx, now.Add(30*time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.True(stale.ID().IsEqual(found[0].ID()))
}

func (suite *JobRepositoryIntegrationTestSuite) TestGetAssignedStartingBetween_SkipsReminded() {
	ctx := context.Background()
	now := time.Now().UTC()

	due := suite.newJob(now.Add(time.Hour))
	suite.Require().NoError(due.Accept(due.CleanerID(), now))

	reminded := suite.newJob(now.Add(time.Hour))
	suite.Require().NoError(reminded.Accept(reminded.CleanerID(), now))
	suite.Require().NoError(reminded.MarkReminderSent(now))

	later := suite.newJob(now.Add(6 * time.Hour))
	suite.Require().NoError(later.Accept(later.CleanerID(), now))

	stillOffered := suite.newJob(now.Add(time.Hour))

	for _, aggregate := range []*job.Job{due, reminded, later, stillOffered} {
		suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	}

	found, err := suite.repository.GetAssignedStartingBetween(ctx, now, now.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.True(due.ID().IsEqual(found[0].ID()))
}

func TestJobRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(JobRepositoryIntegrationTestSuite))
}
