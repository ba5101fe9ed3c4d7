package integration

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
)

func (s *WaitlistAPITestSuite) getRaw(path string) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+path, nil)
	s.Require().NoError(err)
	req.Header.Set("X-Forwarded-For", s.clientIP)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, string(body)
}

func (s *WaitlistAPITestSuite) TestFrontendFallbackServesIndex() {
	const marker = "<div id=\"root\">waitlist</div>"

	dist := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(dist, "index.html"), []byte(marker), 0o644))
	s.T().Setenv("FRONTEND_DIST", dist)

	for _, path := range []string{"/", "/pricing"} {
		resp, body := s.getRaw(path)
		s.Equal(http.StatusOK, resp.StatusCode, "GET %s", path)
		s.Contains(body, marker, "GET %s must serve the built index", path)
	}
}

func (s *WaitlistAPITestSuite) TestFrontendFallbackNeverShadowsAPI() {
	dist := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(dist, "index.html"), []byte("<html></html>"), 0o644))
	s.T().Setenv("FRONTEND_DIST", dist)

	resp, body := s.getRaw("/api/does-not-exist")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(body, "Route not found")
}
