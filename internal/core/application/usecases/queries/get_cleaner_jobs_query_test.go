package queries_test

import (
	"testing"

	"cleaning/internal/core/application/usecases/queries"
	"cleaning/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCleanerJobsQuery_Valid(t *testing.T) {
	cleanerID := kernel.NewUUID()

	query, err := queries.NewGetCleanerJobsQuery(cleanerID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, cleanerID.IsEqual(query.CleanerID()))
}

func TestNewGetCleanerJobsQuery_EmptyCleanerID(t *testing.T) {
	_, err := queries.NewGetCleanerJobsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetCleanerJobsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCleanerJobsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCleanerJobsQueryIsNotConstructed)
}
