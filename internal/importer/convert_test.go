package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/capacity/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_ResolvesRefsAndDefaults(t *testing.T) {
	schema := mustParse(t, validImport)
	require.Empty(t, ValidateImportSchema(schema))

	snap, err := Convert(schema)
	require.NoError(t, err)

	require.Len(t, snap.Users, 3)
	ana, bia := snap.Users[0], snap.Users[1]
	assert.Equal(t, 6.0, ana.DailyAvailableHours)
	assert.Equal(t, domain.DefaultDailyHours, bia.DailyAvailableHours)
	assert.True(t, bia.Active)
	assert.False(t, snap.Users[2].IsOperational())

	require.Len(t, snap.Projects, 2)
	portal := snap.Projects[0]
	assert.Equal(t, domain.ProjectPlanned, portal.Type)
	assert.Equal(t, domain.ProjectContinuous, snap.Projects[1].Type)
	require.NotNil(t, portal.StartDate)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), *portal.StartDate)

	require.Len(t, snap.Members, 1)
	assert.Equal(t, domain.ProjectMember{ProjectID: portal.ID, UserID: ana.ID, AllocationPercentage: 50}, snap.Members[0])

	require.Len(t, snap.Tasks, 2)
	login, api := snap.Tasks[0], snap.Tasks[1]
	assert.Equal(t, portal.ID, login.ProjectID)
	assert.Equal(t, ana.ID, login.DeveloperID)
	assert.Equal(t, []string{bia.ID}, login.CollaboratorIDs)
	assert.Equal(t, domain.TaskInProgress, login.Status)
	assert.Equal(t, domain.TaskTodo, api.Status)
	assert.Empty(t, api.DeveloperID)

	require.Len(t, snap.Allocations, 1)
	assert.Equal(t, domain.TaskMemberAllocation{TaskID: login.ID, UserID: ana.ID, ReservedHours: 30}, snap.Allocations[0])

	require.Len(t, snap.Timesheets, 1)
	assert.Equal(t, login.ID, snap.Timesheets[0].TaskID)
	assert.Equal(t, "kickoff", snap.Timesheets[0].Note)

	require.Len(t, snap.Holidays, 1)
	require.NotNil(t, snap.Holidays[0].EndDate)
	assert.Equal(t, 4, snap.Holidays[0].EndDate.Day())
}

func TestConvert_KeepsExplicitIDs(t *testing.T) {
	schema := mustParse(t, `{
	  "users": [{"ref": "ana", "id": "user-ana", "name": "Ana"}],
	  "projects": [{"ref": "p", "id": "proj-1", "name": "P"}],
	  "tasks": [{"ref": "t", "id": "task-1", "project_ref": "p", "title": "T", "developer_ref": "ana", "estimated_hours": 8}]
	}`)
	require.Empty(t, ValidateImportSchema(schema))

	snap, err := Convert(schema)
	require.NoError(t, err)
	assert.Equal(t, "user-ana", snap.Users[0].ID)
	assert.Equal(t, "proj-1", snap.Projects[0].ID)
	assert.Equal(t, "task-1", snap.Tasks[0].ID)
	assert.Equal(t, "user-ana", snap.Tasks[0].DeveloperID)
}

func TestConvert_GeneratesIDs(t *testing.T) {
	schema := mustParse(t, `{"users": [{"ref": "a", "name": "A"}, {"ref": "b", "name": "B"}], "projects": [], "tasks": []}`)

	snap, err := Convert(schema)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Users[0].ID)
	assert.NotEqual(t, snap.Users[0].ID, snap.Users[1].ID)
}
