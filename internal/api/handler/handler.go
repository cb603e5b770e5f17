package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/flash"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/store"
)

type Handler struct {
	store store.Store
}

func New(st store.Store) *Handler {
	return &Handler{store: st}
}

// Index renders the landing page, or sends logged-in users straight to
// the dashboard.
func (h *Handler) Index(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "landing.html", gin.H{
		"Title":   "Welcome",
		"Flashes": flash.Take(c),
	})
}

// LoginPage renders the login form, or sends logged-in users to the
// dashboard.
func (h *Handler) LoginPage(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":   "Log in",
		"Flashes": flash.Take(c),
	})
}

// Dashboard renders the full task list, unfiltered by assignee.
func (h *Handler) Dashboard(c *gin.Context) {
	user := auth.CurrentUser(c)

	tasks, err := h.store.ListTasks(c.Request.Context())
	if err != nil {
		log.Error("failed to list tasks", "error", err)
		tasks = nil
	}
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		log.Error("failed to list users", "error", err)
		users = nil
	}

	views := models.ToTaskViews(tasks, users)
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title":     "Dashboard",
		"User":      user,
		"Flashes":   flash.Take(c),
		"Tasks":     views,
		"OpenCount": models.CountOpen(views),
	})
}

// NotFound renders the generic error page for unknown routes.
func (h *Handler) NotFound(c *gin.Context) {
	h.ErrorPage(c, http.StatusNotFound, "This page does not exist.")
}

// ErrorPage renders the generic error page with a code and message.
func (h *Handler) ErrorPage(c *gin.Context, code int, message string) {
	c.HTML(code, "error.html", gin.H{
		"Title":   http.StatusText(code),
		"Code":    code,
		"Message": message,
	})
}

func (h *Handler) loggedIn(c *gin.Context) bool {
	session := sessions.Default(c)
	return session.Get(auth.SessionUserKey) != nil
}
