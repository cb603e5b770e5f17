package models

import "time"

// User is the view-model for a logged-in account. It deliberately
// carries no password hash; this is what handlers put in the request
// context and templates render.
type User struct {
	ID       uint
	Username string
	IsAdmin  bool
	Color    string
}

// TaskView is a task prepared for rendering, with the assignee
// resolved to a username. Assignee is empty for dangling or missing
// references.
type TaskView struct {
	ID            uint
	Title         string
	Status        string
	Assignee      string
	AssigneeColor string
	Progress      int
	UpdatedAt     time.Time
}

// TeamView is a team prepared for rendering, with the leader resolved
// to a username. Leader is empty for dangling references.
type TeamView struct {
	ID     uint
	Name   string
	Leader string
}
