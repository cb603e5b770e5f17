package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var _ Store = (*Memory)(nil) // Ensure Memory implements Store

// Memory is an in-memory Store seeded once at construction. The data
// never changes afterwards, but the mutex keeps the type safe for
// future mutating routes served from concurrent handlers.
type Memory struct {
	mu sync.RWMutex

	users map[uint]*User
	teams map[uint]*Team
	tasks map[uint]*Task

	usersByName map[string]*User
}

// NewMemory builds a Memory store from seed data, hashing every seed
// password with bcrypt. Duplicate IDs or usernames are rejected.
func NewMemory(seed Seed) (*Memory, error) {
	m := &Memory{
		users:       make(map[uint]*User, len(seed.Users)),
		teams:       make(map[uint]*Team, len(seed.Teams)),
		tasks:       make(map[uint]*Task, len(seed.Tasks)),
		usersByName: make(map[string]*User, len(seed.Users)),
	}

	for _, su := range seed.Users {
		if _, ok := m.users[su.ID]; ok {
			return nil, fmt.Errorf("duplicate user id %d in seed data", su.ID)
		}
		if _, ok := m.usersByName[su.Username]; ok {
			return nil, fmt.Errorf("duplicate username %q in seed data", su.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for user %q: %w", su.Username, err)
		}
		user := &User{
			ID:           su.ID,
			Username:     su.Username,
			PasswordHash: hash,
			IsAdmin:      su.IsAdmin,
			Color:        su.Color,
		}
		m.users[user.ID] = user
		m.usersByName[user.Username] = user
	}

	for _, st := range seed.Teams {
		if _, ok := m.teams[st.ID]; ok {
			return nil, fmt.Errorf("duplicate team id %d in seed data", st.ID)
		}
		team := st
		m.teams[team.ID] = &team
	}

	for _, st := range seed.Tasks {
		if _, ok := m.tasks[st.ID]; ok {
			return nil, fmt.Errorf("duplicate task id %d in seed data", st.ID)
		}
		task := st
		if task.Status == "" {
			task.Status = StatusOpen
		}
		m.tasks[task.ID] = &task
	}

	return m, nil
}

func (m *Memory) GetUserByID(_ context.Context, id uint) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.usersByName[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *Memory) ListTeams(_ context.Context) ([]Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	teams := make([]Team, 0, len(m.teams))
	for _, t := range m.teams {
		teams = append(teams, *t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (m *Memory) ListTasks(_ context.Context) ([]Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}
