package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/flash"
	"github.com/taskdeck/taskdeck/internal/models"
)

// Admin renders the full users, teams and tasks lists. The route is
// guarded by RequireAuth and RequireAdmin, so the context user is
// always an admin here.
func (h *Handler) Admin(c *gin.Context) {
	user := auth.CurrentUser(c)

	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		log.Error("failed to list users", "error", err)
		users = nil
	}
	teams, err := h.store.ListTeams(c.Request.Context())
	if err != nil {
		log.Error("failed to list teams", "error", err)
		teams = nil
	}
	tasks, err := h.store.ListTasks(c.Request.Context())
	if err != nil {
		log.Error("failed to list tasks", "error", err)
		tasks = nil
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Title":   "Admin",
		"User":    user,
		"Flashes": flash.Take(c),
		"Users":   models.ToUsers(users),
		"Teams":   models.ToTeamViews(teams, users),
		"Tasks":   models.ToTaskViews(tasks, users),
	})
}
