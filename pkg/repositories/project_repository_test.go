package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defectdesk/defectdesk-engine/pkg/models"
	"github.com/defectdesk/defectdesk-engine/pkg/testhelpers"
)

func TestProjectRepository_ListActive_Counts(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	db := tdb.DB()
	ctx := context.Background()

	author := seedUser(t, db, models.RoleManager, "Ivan", "Ivanov")
	project := seedProject(t, db, "Block A")
	defects := NewDefectRepository(db)

	seedDefect(t, defects, project, author, "a", models.StatusNew, models.PriorityLow)
	seedDefect(t, defects, project, author, "b", models.StatusInProgress, models.PriorityMedium)
	seedDefect(t, defects, project, author, "c", models.StatusClosed, models.PriorityHigh)

	projects, err := NewProjectRepository(db).ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	got := projects[0]
	assert.Equal(t, project.ID, got.ID)
	assert.Equal(t, 3, got.TotalDefects)
	assert.Equal(t, 1, got.NewDefects)
	assert.Equal(t, 1, got.InProgressDefects)
	assert.Equal(t, 1, got.ClosedDefects)
}

func TestProjectRepository_ListActive_CancelledCountsAsClosed(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	db := tdb.DB()
	ctx := context.Background()

	author := seedUser(t, db, models.RoleManager, "Ivan", "Ivanov")
	project := seedProject(t, db, "Block A")
	defects := NewDefectRepository(db)

	seedDefect(t, defects, project, author, "a", models.StatusClosed, models.PriorityLow)
	seedDefect(t, defects, project, author, "b", models.StatusCancelled, models.PriorityLow)

	projects, err := NewProjectRepository(db).ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 2, projects[0].ClosedDefects)
}

func TestProjectRepository_ListActive_Visibility(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	db := tdb.DB()
	ctx := context.Background()

	repo := NewProjectRepository(db)

	empty := seedProject(t, db, "No defects yet")
	time.Sleep(5 * time.Millisecond)
	newer := seedProject(t, db, "Newer project")

	inactive := &models.Project{Name: "Mothballed", Address: "x", IsActive: false}
	require.NoError(t, repo.Create(ctx, inactive))

	projects, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2, "inactive projects must be excluded")

	assert.Equal(t, newer.ID, projects[0].ID)
	assert.Equal(t, empty.ID, projects[1].ID)
	assert.Equal(t, 0, projects[1].TotalDefects)
}

func TestProjectRepository_Stats(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	db := tdb.DB()
	ctx := context.Background()

	author := seedUser(t, db, models.RoleManager, "Ivan", "Ivanov")
	projectA := seedProject(t, db, "Block A")
	projectB := seedProject(t, db, "Block B")
	defects := NewDefectRepository(db)

	seedDefect(t, defects, projectA, author, "a", models.StatusNew, models.PriorityCritical)
	seedDefect(t, defects, projectA, author, "b", models.StatusOnReview, models.PriorityHigh)
	seedDefect(t, defects, projectB, author, "c", models.StatusCancelled, models.PriorityHigh)
	seedDefect(t, defects, projectB, author, "d", models.StatusInProgress, models.PriorityLow)

	stats, err := NewProjectRepository(db).Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalDefects)
	assert.Equal(t, 1, stats.NewDefects)
	assert.Equal(t, 1, stats.InProgressDefects)
	assert.Equal(t, 1, stats.OnReviewDefects)
	assert.Equal(t, 0, stats.ClosedDefects)
	assert.Equal(t, 1, stats.CancelledDefects)
	assert.Equal(t, 1, stats.CriticalDefects)
	assert.Equal(t, 2, stats.HighDefects)
}
