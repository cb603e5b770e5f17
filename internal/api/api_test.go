package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/store"
)

type ServerTestSuite struct {
	suite.Suite
	server *Server
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	st, err := store.NewMemory(store.Seed{
		Users: []store.SeedUser{
			{ID: 1, Username: "admin", Password: "admin123", IsAdmin: true, Color: "#7c3aed"},
			{ID: 2, Username: "maya", Password: "maya123", Color: "#0ea5e9"},
		},
		Teams: []store.Team{
			{ID: 1, Name: "Platform", LeaderID: 1},
		},
		Tasks: []store.Task{
			{ID: 1, Title: "Fix login redirect loop", Status: store.StatusOpen, AssigneeID: 2, Progress: 75, UpdatedAt: time.Now()},
			{ID: 2, Title: "Plan Q3 roadmap", Status: store.StatusOpen, AssigneeID: 99, Progress: 0, UpdatedAt: time.Now()},
		},
	})
	s.Require().NoError(err)

	cfg := &config.Config{
		Listen:        "127.0.0.1:0",
		SessionKey:    "test-secret",
		SessionMaxAge: 3600,
	}
	s.server, err = New(cfg, st, true)
	s.Require().NoError(err)
}

func (s *ServerTestSuite) do(method, path string, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(w, req)
	return w
}

func (s *ServerTestSuite) login(username, password string) *httptest.ResponseRecorder {
	return s.do("POST", "/login", "username="+username+"&password="+password, nil)
}

func (s *ServerTestSuite) TestIndex_Anonymous() {
	w := s.do("GET", "/", "", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "taskdeck")
	s.Contains(w.Body.String(), "Log in")
}

func (s *ServerTestSuite) TestIndex_RedirectsWhenLoggedIn() {
	w := s.login("maya", "maya123")
	s.Require().Equal(http.StatusFound, w.Code)

	w2 := s.do("GET", "/", "", w.Result().Cookies())
	s.Equal(http.StatusFound, w2.Code)
	s.Equal("/dashboard", w2.Header().Get("Location"))
}

func (s *ServerTestSuite) TestLogin_SuccessShowsDashboard() {
	w := s.login("admin", "admin123")
	s.Require().Equal(http.StatusFound, w.Code)
	s.Equal("/dashboard", w.Header().Get("Location"))

	// exactly one session cookie: uid and the success notice must
	// share a single save
	var sessionCookies int
	for _, ck := range w.Result().Cookies() {
		if ck.Name == SessionName {
			sessionCookies++
		}
	}
	s.Equal(1, sessionCookies)

	w2 := s.do("GET", "/dashboard", "", w.Result().Cookies())
	s.Equal(http.StatusOK, w2.Code)
	s.Contains(w2.Body.String(), "Welcome back, admin")
	s.Contains(w2.Body.String(), "Fix login redirect loop")
	s.Contains(w2.Body.String(), "Plan Q3 roadmap")
	s.Contains(w2.Body.String(), "unassigned")
}

func (s *ServerTestSuite) TestLogin_FailureLeavesSessionUnset() {
	w := s.login("admin", "wrong")
	s.Require().Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))

	// the failure notice shows on the landing page
	w2 := s.do("GET", "/", "", w.Result().Cookies())
	s.Equal(http.StatusOK, w2.Code)
	s.Contains(w2.Body.String(), "Invalid username or password")

	// and the session holds no user
	w3 := s.do("GET", "/dashboard", "", w.Result().Cookies())
	s.Equal(http.StatusFound, w3.Code)
	s.Equal("/", w3.Header().Get("Location"))
}

func (s *ServerTestSuite) TestDashboard_RequiresSession() {
	w := s.do("GET", "/dashboard", "", nil)

	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))
}

func (s *ServerTestSuite) TestAdmin_DeniedForNonAdmin() {
	w := s.login("maya", "maya123")
	s.Require().Equal(http.StatusFound, w.Code)

	w2 := s.do("GET", "/admin", "", w.Result().Cookies())
	s.Equal(http.StatusFound, w2.Code)
	s.Equal("/dashboard", w2.Header().Get("Location"))

	w3 := s.do("GET", "/dashboard", "", combineCookies(w.Result().Cookies(), w2.Result().Cookies()))
	s.Equal(http.StatusOK, w3.Code)
	s.Contains(w3.Body.String(), "Admin access required")
}

func (s *ServerTestSuite) TestAdmin_RendersEverythingForAdmin() {
	w := s.login("admin", "admin123")
	s.Require().Equal(http.StatusFound, w.Code)

	w2 := s.do("GET", "/admin", "", w.Result().Cookies())
	s.Equal(http.StatusOK, w2.Code)

	body := w2.Body.String()
	s.Contains(body, "admin")
	s.Contains(body, "maya")
	s.Contains(body, "Platform")
	s.Contains(body, "Fix login redirect loop")
	// password hashes never reach the page
	s.NotContains(body, "$2a$")
}

func (s *ServerTestSuite) TestLogout_InvalidatesSession() {
	w := s.login("maya", "maya123")
	s.Require().Equal(http.StatusFound, w.Code)

	w2 := s.do("GET", "/logout", "", w.Result().Cookies())
	s.Equal(http.StatusFound, w2.Code)
	s.Equal("/", w2.Header().Get("Location"))

	w3 := s.do("GET", "/dashboard", "", w2.Result().Cookies())
	s.Equal(http.StatusFound, w3.Code)
	s.Equal("/", w3.Header().Get("Location"))
}

// panicStore fails loudly on task reads to exercise the recovery path.
type panicStore struct {
	*store.Memory
}

func (p *panicStore) ListTasks(context.Context) ([]store.Task, error) {
	panic("task list exploded")
}

func (s *ServerTestSuite) TestPanic_RendersErrorPage() {
	st, err := store.NewMemory(store.Seed{
		Users: []store.SeedUser{
			{ID: 1, Username: "admin", Password: "admin123", IsAdmin: true},
		},
	})
	s.Require().NoError(err)

	cfg := &config.Config{
		Listen:        "127.0.0.1:0",
		SessionKey:    "test-secret",
		SessionMaxAge: 3600,
	}
	server, err := New(cfg, &panicStore{st}, true)
	s.Require().NoError(err)

	req := httptest.NewRequest("POST", "/login", strings.NewReader("username=admin&password=admin123"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	s.Require().Equal(http.StatusFound, w.Code)

	req = httptest.NewRequest("GET", "/dashboard", nil)
	for _, ck := range w.Result().Cookies() {
		req.AddCookie(ck)
	}
	w2 := httptest.NewRecorder()
	server.Handler().ServeHTTP(w2, req)

	s.Equal(http.StatusInternalServerError, w2.Code)
	s.Contains(w2.Body.String(), "500")
	s.Contains(w2.Body.String(), "Something went wrong.")
}

func (s *ServerTestSuite) TestNotFound_RendersErrorPage() {
	w := s.do("GET", "/no-such-page", "", nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(w.Body.String(), "404")
	s.Contains(w.Body.String(), "This page does not exist.")
}

func (s *ServerTestSuite) TestRequestID_IsEchoed() {
	w := s.do("GET", "/", "", nil)
	s.NotEmpty(w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w2 := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(w2, req)
	s.Equal("abc-123", w2.Header().Get("X-Request-ID"))
}

func (s *ServerTestSuite) TestNew_RequiresConfigAndStore() {
	_, err := New(nil, nil, true)
	s.ErrorContains(err, "config is required")

	cfg := &config.Config{Listen: ":0", SessionKey: "x", SessionMaxAge: 60}
	_, err = New(cfg, nil, true)
	s.ErrorContains(err, "store is required")
}

// combineCookies merges two cookie sets, later ones winning on name
// collisions. Redirect responses re-set the session cookie to store
// the flash notice.
func combineCookies(first, second []*http.Cookie) []*http.Cookie {
	byName := make(map[string]*http.Cookie)
	for _, ck := range first {
		byName[ck.Name] = ck
	}
	for _, ck := range second {
		byName[ck.Name] = ck
	}
	merged := make([]*http.Cookie, 0, len(byName))
	for _, ck := range byName {
		merged = append(merged, ck)
	}
	return merged
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
