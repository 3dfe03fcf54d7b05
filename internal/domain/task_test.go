package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestIsClosed(t *testing.T) {
	cases := []struct {
		status TaskStatus
		closed bool
	}{
		{TaskTodo, false},
		{TaskInProgress, false},
		{TaskReview, false},
		{TaskTesting, false},
		{TaskDone, true},
		{TaskCancelled, true},
	}
	for _, tc := range cases {
		task := &Task{Status: tc.status}
		assert.Equal(t, tc.closed, task.IsClosed(), "status=%s", tc.status)
	}
}

func TestIsClosed_SoftDeleted(t *testing.T) {
	task := &Task{Status: TaskInProgress}
	require.NoError(t, task.MarkDeleted(testNow))
	assert.True(t, task.IsClosed())
	assert.Equal(t, testNow, task.UpdatedAt)
}

func TestMarkDeleted_Twice(t *testing.T) {
	task := &Task{ID: "t-1"}
	require.NoError(t, task.MarkDeleted(testNow))
	err := task.MarkDeleted(testNow.Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already deleted")
	assert.Equal(t, testNow, *task.DeletedAt, "first deletion time is kept")
}

func TestTeam_DedupesOwnerAndCollaborators(t *testing.T) {
	task := &Task{DeveloperID: "u1", CollaboratorIDs: []string{"u2", "u1", "", "u2", "u3"}}
	assert.Equal(t, []string{"u1", "u2", "u3"}, task.Team())
}

func TestTeam_NoOwner(t *testing.T) {
	task := &Task{CollaboratorIDs: []string{"u2"}}
	assert.Equal(t, []string{"u2"}, task.Team())
}

func TestHasMember(t *testing.T) {
	task := &Task{DeveloperID: "u1", CollaboratorIDs: []string{"u2"}}
	assert.True(t, task.HasMember("u1"))
	assert.True(t, task.HasMember("u2"))
	assert.False(t, task.HasMember("u3"))
	assert.False(t, task.HasMember(""))
}

func TestHolidayLast(t *testing.T) {
	start := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	single := Holiday{Date: start}
	assert.Equal(t, start, single.Last())

	end := start.AddDate(0, 0, 2)
	span := Holiday{Date: start, EndDate: &end}
	assert.Equal(t, end, span.Last())
}
