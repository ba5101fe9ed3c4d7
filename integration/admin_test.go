package integration

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/domain"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type AdminFlowTestSuite struct {
	suite.Suite
	db        *gorm.DB
	server    *httptest.Server
	baseURL   string
	logger    *log.Logger
	appConfig *config.ApplicationConfig

	// Redirects are asserted explicitly, so the client must not follow them.
	client *http.Client

	testSeq  int
	clientIP string
}

func (s *AdminFlowTestSuite) SetupSuite() {
	os.Setenv("TRUSTED_PROXIES", "*")

	var err error
	s.db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=10000"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)

	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = s.db.AutoMigrate(models.ModelRegistry...)
	s.Require().NoError(err)

	s.logger = log.NewLoggerWithJSONOutput()

	s.appConfig = &config.ApplicationConfig{
		DB:     s.db,
		Logger: s.logger,
	}

	s.appConfig.RouterService = router.CreateRouterService(s.logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	domain.SetupCoreDomain(s.appConfig)

	s.server = httptest.NewServer(s.appConfig.RouterService.GetEngine())
	s.baseURL = s.server.URL

	s.client = &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *AdminFlowTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.db != nil {
		sqlDB, _ := s.db.DB()
		sqlDB.Close()
	}
	os.Unsetenv("TRUSTED_PROXIES")
}

func (s *AdminFlowTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM waitlist_entries")
	s.db.Exec("DELETE FROM admin_sessions")

	s.testSeq++
	s.clientIP = fmt.Sprintf("10.10.%d.%d", s.testSeq/250, s.testSeq%250+1)
}

// Helper methods

func (s *AdminFlowTestSuite) get(path string, sessionCookie *http.Cookie) *http.Response {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+path, nil)
	s.Require().NoError(err)
	req.Header.Set("X-Forwarded-For", s.clientIP)
	if sessionCookie != nil {
		req.AddCookie(sessionCookie)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *AdminFlowTestSuite) postLogin(username, password string) *http.Response {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/admin/login", strings.NewReader(form.Encode()))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-For", s.clientIP)

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *AdminFlowTestSuite) login() *http.Cookie {
	resp := s.postLogin("admin", "changeme123")
	defer resp.Body.Close()

	s.Require().Equal(http.StatusFound, resp.StatusCode)
	s.Require().Equal("/admin/dashboard", resp.Header.Get("Location"))

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "admin_session" && cookie.Value != "" {
			return cookie
		}
	}
	s.Require().FailNow("login response did not set a session cookie")
	return nil
}

func (s *AdminFlowTestSuite) readBody(resp *http.Response) string {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return string(body)
}

// Tests

func (s *AdminFlowTestSuite) TestLoginPageRenders() {
	resp := s.get("/admin/login", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), "text/html")
	s.Contains(s.readBody(resp), "Admin Access")
}

func (s *AdminFlowTestSuite) TestLoginFailureRedirectsWithErrorFlag() {
	resp := s.postLogin("admin", "wrong-password")
	defer resp.Body.Close()

	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/admin/login?error=1", resp.Header.Get("Location"))
	s.Empty(resp.Cookies(), "failed login must not set a session cookie")

	errorPage := s.get("/admin/login?error=1", nil)
	s.Contains(s.readBody(errorPage), "Invalid credentials")
}

func (s *AdminFlowTestSuite) TestRootRedirectsBySessionState() {
	resp := s.get("/admin", nil)
	resp.Body.Close()
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/admin/login", resp.Header.Get("Location"))

	cookie := s.login()

	resp = s.get("/admin", cookie)
	resp.Body.Close()
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/admin/dashboard", resp.Header.Get("Location"))
}

func (s *AdminFlowTestSuite) TestDashboardRequiresSession() {
	resp := s.get("/admin/dashboard", nil)
	resp.Body.Close()

	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/admin/login", resp.Header.Get("Location"))
}

func (s *AdminFlowTestSuite) TestDashboardShowsEntries() {
	s.Require().NoError(s.db.Create(&models.WaitlistEntry{
		Email:   "listed@example.com",
		Website: "https://listed.example.com",
	}).Error)

	cookie := s.login()
	resp := s.get("/admin/dashboard", cookie)

	s.Equal(http.StatusOK, resp.StatusCode)
	body := s.readBody(resp)
	s.Contains(body, "Admin Panel")
	s.Contains(body, "listed@example.com")
	s.Contains(body, "https://listed.example.com")
}

func (s *AdminFlowTestSuite) TestSessionGatesWaitlistEndpoint() {
	cookie := s.login()

	resp := s.get("/api/waitlist", cookie)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(s.readBody(resp), "entries")

	// Logout destroys the session server-side; the old cookie is dead.
	logoutResp := s.get("/admin/logout", cookie)
	logoutResp.Body.Close()
	s.Equal(http.StatusFound, logoutResp.StatusCode)
	s.Equal("/admin/login", logoutResp.Header.Get("Location"))

	resp = s.get("/api/waitlist", cookie)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *AdminFlowTestSuite) TestTamperedCookieRejected() {
	cookie := s.login()
	cookie.Value = strings.Repeat("A", len(cookie.Value))

	resp := s.get("/api/waitlist", cookie)
	resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminFlowSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	suite.Run(t, new(AdminFlowTestSuite))
}
