package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFrontendDist(t *testing.T, indexBody string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexBody), 0o644); err != nil {
		t.Fatalf("write index.html: %v", err)
	}
	return dir
}

func TestSPAFallback_ServesIndexForUnmatchedGet(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("FRONTEND_DIST", writeFrontendDist(t, "<div id=\"root\">app</div>"))

	rs := newTestRouterService(t)
	mountTestController(rs)

	for _, path := range []string{"/", "/pricing", "/deep/client/route"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		rs.GetEngine().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d: %s", path, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "<div id=\"root\">") {
			t.Fatalf("GET %s: expected index.html contents, got %q", path, w.Body.String())
		}
	}
}

func TestSPAFallback_ServesStaticAssetWhenPresent(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	dist := writeFrontendDist(t, "<div id=\"root\"></div>")
	t.Setenv("FRONTEND_DIST", dist)

	if err := os.WriteFile(filepath.Join(dist, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatalf("write app.js: %v", err)
	}

	rs := newTestRouterService(t)
	mountTestController(rs)

	req := httptest.NewRequest(http.MethodGet, "/app.js", nil)
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "console.log(1)" {
		t.Fatalf("expected asset contents, got %q", w.Body.String())
	}
}

func TestSPAFallback_ApiAndAdminPathsStay404(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("FRONTEND_DIST", writeFrontendDist(t, "<div id=\"root\"></div>"))

	rs := newTestRouterService(t)
	mountTestController(rs)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/does-not-exist"},
		{http.MethodGet, "/admin/does-not-exist"},
		{http.MethodPost, "/pricing"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		rs.GetEngine().ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d: %s", tc.method, tc.path, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Route not found") {
			t.Fatalf("%s %s: expected JSON not-found body, got %q", tc.method, tc.path, w.Body.String())
		}
	}
}

func TestSPAFallback_ReportsMissingBuild(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("FRONTEND_DIST", t.TempDir())

	rs := newTestRouterService(t)
	mountTestController(rs)

	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Frontend not built") {
		t.Fatalf("expected missing-build message, got %q", w.Body.String())
	}
}
