package store

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/taskdeck/taskdeck/internal/config"
)

// SeedUser is a user record as it appears in seed data, before the
// password is hashed.
type SeedUser struct {
	ID       uint
	Username string
	Password string
	IsAdmin  bool
	Color    string
}

// Seed is the startup dataset for a Memory store.
type Seed struct {
	Users []SeedUser
	Teams []Team
	Tasks []Task
}

// DefaultSeed returns the built-in demo dataset. User 1 is the admin
// account.
func DefaultSeed() Seed {
	now := time.Now()
	return Seed{
		Users: []SeedUser{
			{ID: 1, Username: "admin", Password: "admin123", IsAdmin: true, Color: "#7c3aed"},
			{ID: 2, Username: "maya", Password: "maya123", Color: "#0ea5e9"},
			{ID: 3, Username: "jonas", Password: "jonas123", Color: "#f59e0b"},
		},
		Teams: []Team{
			{ID: 1, Name: "Platform", LeaderID: 1},
			{ID: 2, Name: "Frontend", LeaderID: 2},
		},
		Tasks: []Task{
			{ID: 1, Title: "Set up CI pipeline", Status: StatusOpen, AssigneeID: 2, Progress: 40, UpdatedAt: now.Add(-26 * time.Hour)},
			{ID: 2, Title: "Write onboarding docs", Status: StatusOpen, AssigneeID: 3, Progress: 10, UpdatedAt: now.Add(-3 * time.Hour)},
			{ID: 3, Title: "Fix login redirect loop", Status: StatusOpen, AssigneeID: 2, Progress: 75, UpdatedAt: now.Add(-20 * time.Minute)},
			{ID: 4, Title: "Plan Q3 roadmap", Status: StatusOpen, Progress: 0, UpdatedAt: now.Add(-6 * 24 * time.Hour)},
		},
	}
}

// FromConfig maps the config seed section onto store seed data,
// falling back to the built-in demo dataset when the section is empty.
// String fields are trimmed; nothing else is validated here.
func FromConfig(cfg *config.SeedConfig) Seed {
	if cfg == nil || (len(cfg.Users) == 0 && len(cfg.Teams) == 0 && len(cfg.Tasks) == 0) {
		return DefaultSeed()
	}
	now := time.Now()
	return Seed{
		Users: lo.Map(cfg.Users, func(u config.SeedUser, _ int) SeedUser {
			return SeedUser{
				ID:       u.ID,
				Username: strings.TrimSpace(u.Username),
				Password: u.Password,
				IsAdmin:  u.IsAdmin,
				Color:    strings.TrimSpace(u.Color),
			}
		}),
		Teams: lo.Map(cfg.Teams, func(t config.SeedTeam, _ int) Team {
			return Team{
				ID:       t.ID,
				Name:     strings.TrimSpace(t.Name),
				LeaderID: t.LeaderID,
			}
		}),
		Tasks: lo.Map(cfg.Tasks, func(t config.SeedTask, _ int) Task {
			return Task{
				ID:         t.ID,
				Title:      strings.TrimSpace(t.Title),
				Status:     strings.TrimSpace(t.Status),
				AssigneeID: t.AssigneeID,
				Progress:   t.Progress,
				UpdatedAt:  now,
			}
		}),
	}
}
