package api

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/taskdeck/taskdeck/internal/api/handler"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/web"
)

// SessionName is the cookie name holding the signed session.
const SessionName = "taskdeck_session"

type Server struct {
	cfg          *config.Config
	ginEngine    *gin.Engine
	store        store.Store
	authProvider *auth.Provider
	handler      *handler.Handler
	httpServer   *http.Server
}

func New(cfg *config.Config, st store.Store, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:          cfg,
		ginEngine:    gin.New(),
		store:        st,
		authProvider: auth.NewProvider(st),
		handler:      handler.New(st),
	}

	if err := s.setupRenderer(); err != nil {
		return nil, err
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

func (s *Server) setupRenderer() error {
	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	s.ginEngine.SetHTMLTemplate(tmpl)
	return nil
}

func (s *Server) setupMiddleware() {
	s.ginEngine.Use(RequestID())
	s.ginEngine.Use(AccessLog())
	s.ginEngine.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error("panic recovered", "error", err, "request_id", c.GetString("request_id"))
		s.handler.ErrorPage(c, http.StatusInternalServerError, "Something went wrong.")
	}))
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.setupSession()
}

func (s *Server) setupSession() {
	key := []byte(s.cfg.SessionKey)
	if len(key) == 0 {
		key = randomSessionKey()
		log.Warn("no session key configured, generated a random one; sessions will not survive a restart")
	}
	cookieStore := cookie.NewStore(key)
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(SessionName, cookieStore))
}

func (s *Server) setupRoutes() {
	staticFS, err := web.Static()
	if err != nil {
		log.Error("failed to load static assets", "error", err)
	} else {
		s.ginEngine.StaticFS("/static", http.FS(staticFS))
	}

	s.ginEngine.GET("/", s.handler.Index)
	s.ginEngine.GET("/login", s.handler.LoginPage)
	s.ginEngine.POST("/login", s.authProvider.Login)
	s.ginEngine.GET("/logout", s.authProvider.Logout)

	protected := s.ginEngine.Group("/")
	protected.Use(s.authProvider.RequireAuth())
	protected.GET("/dashboard", s.handler.Dashboard)

	admin := s.ginEngine.Group("/admin")
	admin.Use(s.authProvider.RequireAuth(), s.authProvider.RequireAdmin())
	admin.GET("", s.handler.Admin)

	s.ginEngine.NoRoute(s.handler.NotFound)
}

// Handler exposes the underlying http handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves HTTP until the listener is closed via Shutdown.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func randomSessionKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		// crypto/rand failures are not recoverable
		log.Fatal("failed to generate session key", "error", err)
	}
	return key
}
