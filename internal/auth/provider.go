// Package auth implements username/password login against the store
// and the session-based route guards.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/flash"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/store"
)

// SessionUserKey is the session key holding the logged-in user's id.
const SessionUserKey = "uid"

// ContextUserKey is the gin context key holding the resolved user.
const ContextUserKey = "user"

// Provider authenticates users against the store.
type Provider struct {
	store store.Store
}

func NewProvider(st store.Store) *Provider {
	return &Provider{store: st}
}

// Login handles POST /login. On success the session holds the user id
// under "uid" and the browser is sent to the dashboard; on failure the
// session is left untouched and the browser is sent back to the index
// with a notice. There is no lockout or throttling.
func (p *Provider) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		flash.Add(c, flash.LevelDanger, "Username and password are required")
		flash.Save(c)
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := p.store.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to look up user", "username", username, "error", err)
		}
		p.rejectLogin(c, username)
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		p.rejectLogin(c, username)
		return
	}

	// uid and the success notice go into the same session save: a
	// second save would emit a conflicting Set-Cookie header.
	session := sessions.Default(c)
	session.Set(SessionUserKey, user.ID)
	flash.Add(c, flash.LevelSuccess, "Welcome back, "+user.Username)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

func (p *Provider) rejectLogin(c *gin.Context, username string) {
	log.Debug("rejected login", "username", username)
	flash.Add(c, flash.LevelDanger, "Invalid username or password")
	flash.Save(c)
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session and sends the browser back to the index.
func (p *Provider) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	flash.Add(c, flash.LevelInfo, "You have been logged out")
	if err := session.Save(); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// UserFromSession resolves the session "uid" to a user view-model. It
// returns nil when the session has no uid, or when the id is stale and
// matches no stored user; neither case is an error.
func (p *Provider) UserFromSession(c *gin.Context) *models.User {
	session := sessions.Default(c)
	raw := session.Get(SessionUserKey)
	if raw == nil {
		return nil
	}
	uid, ok := raw.(uint)
	if !ok {
		return nil
	}
	user, err := p.store.GetUserByID(c.Request.Context(), uid)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to resolve session user", "uid", uid, "error", err)
		}
		return nil
	}
	return models.ToUser(user)
}

// CurrentUser returns the user placed in the context by RequireAuth,
// or nil outside guarded routes.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
