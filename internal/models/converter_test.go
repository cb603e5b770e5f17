package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/store"
)

var testUsers = []store.User{
	{ID: 1, Username: "admin", PasswordHash: []byte("$2a$10$x"), IsAdmin: true, Color: "#7c3aed"},
	{ID: 2, Username: "maya", PasswordHash: []byte("$2a$10$y"), Color: "#0ea5e9"},
}

func TestToUser_DropsPasswordHash(t *testing.T) {
	user := ToUser(&testUsers[0])

	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, "#7c3aed", user.Color)
}

func TestToTaskViews_ResolvesAssignees(t *testing.T) {
	now := time.Now()
	tasks := []store.Task{
		{ID: 1, Title: "Set up CI", Status: store.StatusOpen, AssigneeID: 2, Progress: 40, UpdatedAt: now},
		{ID: 2, Title: "Orphaned", Status: store.StatusDone, AssigneeID: 99, Progress: 100, UpdatedAt: now},
	}

	views := ToTaskViews(tasks, testUsers)
	require.Len(t, views, 2)

	assert.Equal(t, "maya", views[0].Assignee)
	assert.Equal(t, "#0ea5e9", views[0].AssigneeColor)

	// dangling reference resolves to an empty assignee, not an error
	assert.Empty(t, views[1].Assignee)
	assert.Empty(t, views[1].AssigneeColor)
}

func TestToTeamViews_ResolvesLeaders(t *testing.T) {
	teams := []store.Team{
		{ID: 1, Name: "Platform", LeaderID: 1},
		{ID: 2, Name: "Ghosts", LeaderID: 99},
	}

	views := ToTeamViews(teams, testUsers)
	require.Len(t, views, 2)
	assert.Equal(t, "admin", views[0].Leader)
	assert.Empty(t, views[1].Leader)
}

func TestCountOpen(t *testing.T) {
	views := []TaskView{
		{Status: store.StatusOpen},
		{Status: store.StatusDone},
		{Status: store.StatusOpen},
		{Status: store.StatusInProgress},
	}
	assert.Equal(t, 2, CountOpen(views))
	assert.Equal(t, 0, CountOpen(nil))
}
