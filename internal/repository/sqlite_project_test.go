package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/capacity/internal/domain"
	"github.com/alexanderramin/capacity/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_UpsertAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	start := testutil.Date(2025, 3, 3)
	delivery := testutil.Date(2025, 4, 30)
	p := testutil.NewTestProject("Portal", testutil.WithProjectWindow(start, delivery))
	require.NoError(t, repo.Upsert(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portal", fetched.Name)
	assert.Equal(t, domain.ProjectPlanned, fetched.Type)
	require.NotNil(t, fetched.StartDate)
	require.NotNil(t, fetched.EstimatedDelivery)
	assert.True(t, start.Equal(*fetched.StartDate))
	assert.True(t, delivery.Equal(*fetched.EstimatedDelivery))
}

func TestProjectRepo_NullableDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProject("Sustentação", testutil.WithProjectType(domain.ProjectContinuous))
	require.NoError(t, repo.Upsert(ctx, p))

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsContinuous())
	assert.Nil(t, fetched.StartDate)
	assert.Nil(t, fetched.EstimatedDelivery)
}

func TestProjectRepo_RejectsUnknownType(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	p := testutil.NewTestProject("Bad", testutil.WithProjectType("retainer"))
	assert.Error(t, repo.Upsert(context.Background(), p))
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectMemberRepo_UpsertAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	users := NewSQLiteUserRepo(db)
	projects := NewSQLiteProjectRepo(db)
	members := NewSQLiteProjectMemberRepo(db)

	u := testutil.NewTestUser("Ana")
	p := testutil.NewTestProject("Portal")
	require.NoError(t, users.Upsert(ctx, u))
	require.NoError(t, projects.Upsert(ctx, p))

	require.NoError(t, members.Upsert(ctx, domain.ProjectMember{ProjectID: p.ID, UserID: u.ID, AllocationPercentage: 50}))
	require.NoError(t, members.Upsert(ctx, domain.ProjectMember{ProjectID: p.ID, UserID: u.ID, AllocationPercentage: 25}))

	byProject, err := members.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	assert.Equal(t, 25.0, byProject[0].AllocationPercentage)

	all, err := members.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
