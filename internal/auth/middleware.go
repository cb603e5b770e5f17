package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/taskdeck/taskdeck/internal/flash"
)

// RequireAuth returns middleware that resolves the session user and
// puts it in the context. Requests without a valid session are sent to
// the index with a warning notice. A stale uid is removed from the
// session, otherwise the index would see a session and bounce the
// browser straight back to the dashboard.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := p.UserFromSession(c)
		if user == nil {
			session := sessions.Default(c)
			session.Delete(SessionUserKey)
			flash.Add(c, flash.LevelWarning, "Please log in to continue")
			flash.Save(c)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAdmin returns middleware that requires the context user to
// have the admin flag. Non-admins are sent to the dashboard with a
// denial notice.
func (p *Provider) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			flash.Add(c, flash.LevelDanger, "Admin access required")
			flash.Save(c)
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
