package gateway

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	gw          *Gateway
	allocations service.AllocationService
	project     *domain.Project
	resource    *domain.Resource
	log         *bytes.Buffer
}

func setup(t *testing.T, loc *time.Location) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	resourceRepo := repository.NewSQLiteResourceRepo(database)
	allocations := service.NewAllocationService(repository.NewSQLiteAllocationRepo(database), testutil.NewTestUoW(database))
	projects := service.NewProjectService(projectRepo)

	p := testutil.NewTestProject("Apollo", testutil.WithColor(domain.ColorRed))
	require.NoError(t, projectRepo.Create(ctx, p))
	r := testutil.NewTestResource("Ada")
	require.NoError(t, resourceRepo.Create(ctx, r))

	var buf bytes.Buffer
	return fixture{
		gw:          New(allocations, projects, loc, service.NewLogUseCaseObserver(&buf)),
		allocations: allocations,
		project:     p,
		resource:    r,
		log:         &buf,
	}
}

func TestSave_CreateThenMove(t *testing.T) {
	f := setup(t, time.UTC)
	ctx := context.Background()

	out := f.gw.Save(ctx, SaveRequest{
		ProjectID:  f.project.ID,
		ResourceID: f.resource.ID,
		Role:       "Engineer",
		Start:      testutil.Day(2024, 1, 7),
		End:        testutil.Day(2024, 1, 7),
	})
	require.True(t, out.OK(), "%v", out.Err)
	assert.Equal(t, OpSave, out.Op)
	require.NotEmpty(t, out.AllocationID)

	out = f.gw.Save(ctx, SaveRequest{
		AllocationID: out.AllocationID,
		Start:        testutil.Day(2024, 1, 9),
		End:          testutil.Day(2024, 1, 12),
	})
	require.True(t, out.OK(), "%v", out.Err)

	got, err := f.allocations.GetByID(ctx, out.AllocationID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-09", got.Start.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-12", got.End.Format(domain.DateLayout))
	assert.Contains(t, f.log.String(), "use_case=gateway.save")
}

func TestSave_SendsViewerCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	f := setup(t, tokyo)
	ctx := context.Background()

	// Tokyo midnight is still the previous day in UTC; the stored date
	// must be the viewer's.
	day := time.Date(2024, time.January, 7, 0, 0, 0, 0, tokyo)
	out := f.gw.Save(ctx, SaveRequest{
		ProjectID: f.project.ID, ResourceID: f.resource.ID, Role: "Engineer",
		Start: day, End: day,
	})
	require.True(t, out.OK(), "%v", out.Err)

	got, err := f.allocations.GetByID(ctx, out.AllocationID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-07", got.Start.Format(domain.DateLayout))
}

func TestSave_FailureIsRemoteError(t *testing.T) {
	f := setup(t, time.UTC)

	out := f.gw.Save(context.Background(), SaveRequest{
		ProjectID: "no-such-project", ResourceID: f.resource.ID, Role: "Engineer",
		Start: testutil.Day(2024, 1, 7), End: testutil.Day(2024, 1, 7),
	})
	require.False(t, out.OK())
	var remote *RemoteError
	require.ErrorAs(t, out.Err, &remote)
	assert.Equal(t, OpSave, remote.Op)
	assert.Contains(t, out.Err.Error(), "saving allocation")
	assert.Contains(t, f.log.String(), "success=false")
}

func TestDelete(t *testing.T) {
	f := setup(t, time.UTC)
	ctx := context.Background()

	out := f.gw.Save(ctx, SaveRequest{
		ProjectID: f.project.ID, ResourceID: f.resource.ID, Role: "Engineer",
		Start: testutil.Day(2024, 1, 7), End: testutil.Day(2024, 1, 8),
	})
	require.True(t, out.OK())

	del := f.gw.Delete(ctx, out.AllocationID)
	assert.True(t, del.OK())
	assert.Equal(t, OpDelete, del.Op)

	again := f.gw.Delete(ctx, out.AllocationID)
	require.False(t, again.OK())
	assert.ErrorIs(t, again.Err, repository.ErrNotFound)
	assert.Contains(t, again.Err.Error(), "deleting allocation")
}

func TestFetchProjects(t *testing.T) {
	f := setup(t, time.UTC)

	got, err := f.gw.FetchProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ProjectSummary{{ID: f.project.ID, Name: "Apollo", Color: domain.ColorRed}}, got)
}

type failingProjects struct{ service.ProjectService }

func (failingProjects) List(context.Context) ([]*domain.Project, error) {
	return nil, errors.New("offline")
}

func TestFetchProjects_Failure(t *testing.T) {
	gw := New(nil, failingProjects{}, nil)

	_, err := gw.FetchProjects(context.Background())
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "loading projects: offline", err.Error())
}

type recordingSignals struct {
	refreshes int
	notices   []Notice
}

func (r *recordingSignals) Refresh() { r.refreshes++ }
func (r *recordingSignals) Notify(n Notice) { r.notices = append(r.notices, n) }

func TestSettle(t *testing.T) {
	s := &recordingSignals{}

	Settle(Outcome{Op: OpSave, AllocationID: "a"}, s)
	assert.Equal(t, 1, s.refreshes)
	assert.Empty(t, s.notices)

	Settle(Outcome{Op: OpDelete, Err: &RemoteError{Op: OpDelete, Err: errors.New("boom")}}, s)
	assert.Equal(t, 1, s.refreshes, "no refresh on failure")
	require.Len(t, s.notices, 1)
	assert.Equal(t, NoticeError, s.notices[0].Level)
	assert.Equal(t, "deleting allocation: boom", s.notices[0].Message)

	assert.NotPanics(t, func() { Settle(Outcome{}, nil) })
}
