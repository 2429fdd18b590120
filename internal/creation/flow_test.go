package creation

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clicked = time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)

func resource() *domain.Resource {
	return &domain.Resource{ID: "r1", Name: "Ada", DefaultRole: "Engineer"}
}

func TestBegin_ScopedCreatesDirectly(t *testing.T) {
	r := resource()
	r.PrimaryAllocation = &domain.Allocation{Role: "Lead"}

	intent := Flow{Resource: r, ScopeProjectID: "p1"}.Begin(clicked.Add(13 * time.Hour))

	assert.Nil(t, intent.Dialog)
	require.NotNil(t, intent.Direct)
	assert.Equal(t, gateway.SaveRequest{
		ProjectID:  "p1",
		ResourceID: "r1",
		Role:       "Lead",
		Start:      clicked,
		End:        clicked,
	}, *intent.Direct)
}

func TestBegin_ScopedFallsBackToDefaultRole(t *testing.T) {
	intent := Flow{Resource: resource(), ScopeProjectID: "p1"}.Begin(clicked)
	require.NotNil(t, intent.Direct)
	assert.Equal(t, "Engineer", intent.Direct.Role)
}

func TestBegin_UnscopedOpensDisabledDialog(t *testing.T) {
	r := resource()
	r.DefaultRole = ""
	intent := Flow{Resource: r}.Begin(clicked)

	assert.Nil(t, intent.Direct)
	require.NotNil(t, intent.Dialog)
	d := intent.Dialog
	assert.True(t, d.Disabled())
	assert.Equal(t, clicked, d.Start)
	assert.Equal(t, clicked, d.End)

	_, err := d.Request()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDraft_EnabledOnceProjectAndRoleSet(t *testing.T) {
	d := Flow{Resource: resource()}.Begin(clicked).Dialog
	d.Projects = []gateway.ProjectSummary{{ID: "p1", Name: "Apollo"}}

	assert.True(t, d.Disabled(), "role defaults but no project yet")
	d.SelectProject("p1")
	assert.False(t, d.Disabled())

	d.SetRole("")
	assert.True(t, d.Disabled())
	d.SetRole("Reviewer")

	req, err := d.Request()
	require.NoError(t, err)
	assert.Equal(t, "p1", req.ProjectID)
	assert.Equal(t, "Reviewer", req.Role)
	assert.Equal(t, "r1", req.ResourceID)
	assert.Empty(t, req.AllocationID)
	assert.Equal(t, req.Start, req.End)
}

func TestDraft_SelectProjectIgnoresUnknown(t *testing.T) {
	d := &Draft{Projects: []gateway.ProjectSummary{{ID: "p1"}}}
	d.SelectProject("nope")
	assert.Empty(t, d.ProjectID)
	d.SelectProject("p1")
	d.SelectProject("")
	assert.Empty(t, d.ProjectID, "clearing is allowed")
}
