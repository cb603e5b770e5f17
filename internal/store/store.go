package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("store: not found")

// Task statuses. Seed data defaults to StatusOpen; values are carried
// as plain strings and not validated on mutation.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// User is an account that can log in. Passwords are only ever kept as
// bcrypt hashes, never in plain text.
type User struct {
	ID           uint
	Username     string
	PasswordHash []byte
	IsAdmin      bool
	Color        string
}

// Team groups users under a leader. LeaderID is an unchecked
// reference: it may point at a user that doesn't exist.
type Team struct {
	ID       uint
	Name     string
	LeaderID uint
}

// Task is a unit of work. AssigneeID is an unchecked reference, and
// Progress is not range-validated.
type Task struct {
	ID         uint
	Title      string
	Status     string
	AssigneeID uint
	Progress   int
	UpdatedAt  time.Time
}

// Store provides read access to users, teams and tasks. Handlers only
// depend on this interface so the in-memory implementation can be
// swapped for a persistent one later.
type Store interface {
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListTeams(ctx context.Context) ([]Team, error)
	ListTasks(ctx context.Context) ([]Task, error)
}
