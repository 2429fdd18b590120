package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (
	repository.ProjectRepo,
	repository.ResourceRepo,
	repository.AllocationRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteResourceRepo(database),
		repository.NewSQLiteAllocationRepo(database),
		testutil.NewTestUoW(database)
}

func TestProjectService_Create_DefaultsAndDuplicates(t *testing.T) {
	projects, _, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(projects)

	p := &domain.Project{Name: "  Apollo "}
	require.NoError(t, svc.Create(ctx, p))
	assert.NotEmpty(t, p.ID, "UUID should be generated")
	assert.Equal(t, "Apollo", p.Name)
	assert.Equal(t, domain.ColorBlue, p.Color, "color should default to blue")

	err := svc.Create(ctx, &domain.Project{Name: "apollo", Color: domain.ColorRed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestProjectService_Create_RejectsUnknownColor(t *testing.T) {
	projects, _, _, _ := setupRepos(t)
	svc := NewProjectService(projects)

	err := svc.Create(context.Background(), &domain.Project{Name: "X", Color: "Magenta"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color")
}

func TestResourceService_Load_GroupsAndOrders(t *testing.T) {
	projects, resources, allocations, _ := setupRepos(t)
	ctx := context.Background()

	zephyr := testutil.NewTestProject("Zephyr", testutil.WithColor(domain.ColorGreen))
	apollo := testutil.NewTestProject("Apollo", testutil.WithColor(domain.ColorRed))
	idle := testutil.NewTestProject("Idle")
	for _, p := range []*domain.Project{zephyr, apollo, idle} {
		require.NoError(t, projects.Create(ctx, p))
	}
	ada := testutil.NewTestResource("Ada", testutil.WithDefaultRole("Engineer"))
	require.NoError(t, resources.Create(ctx, ada))

	past := testutil.NewTestAllocation(apollo.ID, ada.ID, testutil.WithRole("Lead"),
		testutil.WithDates(testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 10)))
	current := testutil.NewTestAllocation(zephyr.ID, ada.ID, testutil.WithRole("Reviewer"),
		testutil.WithDates(testutil.Day(2024, 1, 12), testutil.Day(2024, 1, 20)))
	for _, a := range []*domain.Allocation{past, current} {
		require.NoError(t, allocations.Create(ctx, a))
	}

	loc := time.FixedZone("UTC-5", -5*3600)
	today := time.Date(2024, time.January, 15, 9, 30, 0, 0, loc)

	svc := NewResourceService(resources, allocations, projects)
	got, err := svc.Load(ctx, ada.ID, today)
	require.NoError(t, err)

	assert.Equal(t, []string{apollo.ID, zephyr.ID}, got.ProjectIDs(), "rows ordered by project name, idle projects skipped")
	require.Len(t, got.Projects, 2)
	assert.Equal(t, domain.ColorRed, got.Projects[0].Color)

	row := got.AllocationsByProject[zephyr.ID]
	require.Len(t, row, 1)
	assert.Equal(t, loc, row[0].Start.Location(), "days expressed in the viewer's location")
	assert.Equal(t, 12, row[0].Start.Day())
	assert.Equal(t, domain.ColorGreen, row[0].Color)

	require.NotNil(t, got.PrimaryAllocation)
	assert.Equal(t, current.ID, got.PrimaryAllocation.ID, "allocation covering today wins")
	assert.Equal(t, "Reviewer", got.PrimaryRole())
}

func TestResourceService_Load_NoAllocations(t *testing.T) {
	projects, resources, allocations, _ := setupRepos(t)
	ctx := context.Background()

	ada := testutil.NewTestResource("Ada", testutil.WithDefaultRole("Engineer"))
	require.NoError(t, resources.Create(ctx, ada))

	got, err := NewResourceService(resources, allocations, projects).Load(ctx, ada.ID, time.Now())
	require.NoError(t, err)
	assert.Empty(t, got.ProjectIDs())
	assert.Nil(t, got.PrimaryAllocation)
	assert.Equal(t, "Engineer", got.PrimaryRole())
}

func TestAllocationService_Save_CreatesThenUpdates(t *testing.T) {
	projects, resources, allocations, uow := setupRepos(t)
	ctx := context.Background()

	apollo := testutil.NewTestProject("Apollo")
	require.NoError(t, projects.Create(ctx, apollo))
	ada := testutil.NewTestResource("Ada")
	require.NoError(t, resources.Create(ctx, ada))

	svc := NewAllocationService(allocations, uow)
	a := &domain.Allocation{
		ProjectID:  apollo.ID,
		ResourceID: ada.ID,
		Role:       "Engineer",
		Start:      testutil.Day(2024, 3, 1),
		End:        testutil.Day(2024, 3, 1),
	}
	require.NoError(t, svc.Save(ctx, a))
	require.NotEmpty(t, a.ID)

	// A drag save carries dates only; the stored role survives.
	moved := &domain.Allocation{
		ID:    a.ID,
		Start: testutil.Day(2024, 3, 4),
		End:   testutil.Day(2024, 3, 6),
	}
	require.NoError(t, svc.Save(ctx, moved))

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Role)
	assert.Equal(t, apollo.ID, got.ProjectID)
	assert.Equal(t, 4, got.Start.Day())
	assert.Equal(t, 6, got.End.Day())
}

func TestAllocationService_Save_RejectsInvertedRange(t *testing.T) {
	_, _, allocations, uow := setupRepos(t)
	svc := NewAllocationService(allocations, uow)

	err := svc.Save(context.Background(), &domain.Allocation{
		ProjectID:  "p",
		ResourceID: "r",
		Start:      testutil.Day(2024, 3, 5),
		End:        testutil.Day(2024, 3, 1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestAllocationService_Save_UnknownIDFails(t *testing.T) {
	_, _, allocations, uow := setupRepos(t)
	svc := NewAllocationService(allocations, uow)

	err := svc.Save(context.Background(), &domain.Allocation{
		ID:    "missing",
		Start: testutil.Day(2024, 3, 1),
		End:   testutil.Day(2024, 3, 1),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAllocationService_Update_RollsBackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	resources := repository.NewSQLiteResourceRepo(database)
	allocations := repository.NewSQLiteAllocationRepo(database)
	ctx := context.Background()

	apollo := testutil.NewTestProject("Apollo")
	require.NoError(t, projects.Create(ctx, apollo))
	ada := testutil.NewTestResource("Ada")
	require.NoError(t, resources.Create(ctx, ada))
	a := testutil.NewTestAllocation(apollo.ID, ada.ID)
	require.NoError(t, allocations.Create(ctx, a))

	injected := errors.New("disk full")
	svc := NewAllocationService(allocations, &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: injected})

	err := svc.Save(ctx, &domain.Allocation{ID: a.ID, Start: testutil.Day(2024, 5, 1), End: testutil.Day(2024, 5, 2)})
	assert.ErrorIs(t, err, injected)

	got, err := allocations.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Start.Format(domain.DateLayout), got.Start.Format(domain.DateLayout))
}

func TestAllocationService_Delete_Observed(t *testing.T) {
	_, _, allocations, uow := setupRepos(t)
	var buf bytes.Buffer
	svc := NewAllocationService(allocations, uow, NewLogUseCaseObserver(&buf))

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, buf.String(), "use_case=allocation.delete")
	assert.Contains(t, buf.String(), "success=false")
	assert.Contains(t, buf.String(), "allocation_id=missing")
}
