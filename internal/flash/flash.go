// Package flash implements one-time notice messages on top of the
// session cookie. A message added during one request is rendered on
// the next page and then discarded.
package flash

import (
	"encoding/gob"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Notice levels. They double as CSS class suffixes in the templates.
const (
	LevelWarning = "warning"
	LevelDanger  = "danger"
	LevelSuccess = "success"
	LevelInfo    = "info"
)

// Message is a single one-time notice.
type Message struct {
	Level string
	Text  string
}

const sessionKey = "_flash"

func init() {
	// The cookie store gob-encodes session values.
	gob.Register([]Message{})
}

// Add queues a notice for the next rendered page. It only updates the
// session; callers must save it once before writing the response,
// either via Save or together with their own session changes.
func Add(c *gin.Context, level, text string) {
	session := sessions.Default(c)
	messages, _ := session.Get(sessionKey).([]Message)
	messages = append(messages, Message{Level: level, Text: text})
	session.Set(sessionKey, messages)
}

// Save persists queued notices. The session must be saved exactly once
// per response: every save emits another Set-Cookie header for the
// same cookie, and clients keep only one of them.
func Save(c *gin.Context) {
	if err := sessions.Default(c).Save(); err != nil {
		log.Error("failed to save flash messages", "error", err)
	}
}

// Take drains all queued notices and returns them. The returned slice
// is nil when nothing was queued.
func Take(c *gin.Context) []Message {
	session := sessions.Default(c)
	messages, ok := session.Get(sessionKey).([]Message)
	if !ok || len(messages) == 0 {
		return nil
	}
	session.Delete(sessionKey)
	if err := session.Save(); err != nil {
		log.Error("failed to clear flash messages", "error", err)
	}
	return messages
}
