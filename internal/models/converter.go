package models

import (
	"github.com/samber/lo"

	"github.com/taskdeck/taskdeck/internal/store"
)

// ToUser converts a store user to its view-model, dropping the
// password hash.
func ToUser(u *store.User) *User {
	return &User{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
		Color:    u.Color,
	}
}

// ToUsers converts a slice of store users to view-models.
func ToUsers(users []store.User) []User {
	return lo.Map(users, func(u store.User, _ int) User {
		return *ToUser(&u)
	})
}

// ToTaskViews resolves assignee ids against the given users and
// converts tasks to view-models. Unknown assignees resolve to an empty
// name rather than an error.
func ToTaskViews(tasks []store.Task, users []store.User) []TaskView {
	byID := lo.SliceToMap(users, func(u store.User) (uint, store.User) {
		return u.ID, u
	})
	return lo.Map(tasks, func(t store.Task, _ int) TaskView {
		view := TaskView{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			Progress:  t.Progress,
			UpdatedAt: t.UpdatedAt,
		}
		if assignee, ok := byID[t.AssigneeID]; ok {
			view.Assignee = assignee.Username
			view.AssigneeColor = assignee.Color
		}
		return view
	})
}

// ToTeamViews resolves leader ids against the given users and converts
// teams to view-models.
func ToTeamViews(teams []store.Team, users []store.User) []TeamView {
	byID := lo.SliceToMap(users, func(u store.User) (uint, store.User) {
		return u.ID, u
	})
	return lo.Map(teams, func(t store.Team, _ int) TeamView {
		view := TeamView{
			ID:   t.ID,
			Name: t.Name,
		}
		if leader, ok := byID[t.LeaderID]; ok {
			view.Leader = leader.Username
		}
		return view
	})
}

// CountOpen returns the number of tasks still in the open status.
func CountOpen(tasks []TaskView) int {
	return lo.CountBy(tasks, func(t TaskView) bool {
		return t.Status == store.StatusOpen
	})
}
