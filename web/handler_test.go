package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jrlacey28/ashley-model-site/content"
	"github.com/jrlacey28/ashley-model-site/crypto"
	"github.com/jrlacey28/ashley-model-site/library"
	"github.com/jrlacey28/ashley-model-site/storage"
	"github.com/jrlacey28/ashley-model-site/thumbnail"
	"github.com/spf13/afero"
)

func testHandler(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	afs := afero.NewMemMapFs()
	afero.WriteFile(afs, "photos/hero.jpg", []byte("hero"), 0644)
	afero.WriteFile(afs, "photos/2026-01-01-high-fashion/a.jpg", []byte("aa"), 0644)
	afero.WriteFile(afs, "photos/2026-01-01-high-fashion/b.jpg", []byte("bb"), 0644)
	afero.WriteFile(afs, "photos/digitals/d1.jpg", []byte("dd"), 0644)

	local := storage.NewLocal(afs, crypto.GenerateSha256)
	tbl := &content.Table{
		Site: content.Site{Name: "Ashley", Email: "hi@example.com"},
		Projects: map[string]content.Record{
			"high-fashion": {Title: "High Fashion", Category: "Campaign"},
		},
	}
	libCfg := library.Config{PhotoRoot: "photos", HeroPath: "photos/hero.jpg"}
	deps := Deps{
		Library: library.NewService(local, libCfg, tbl),
		Photos:  local,
		Thumbs:  thumbnail.NewService(local),
		Content: tbl,
	}
	return New(cfg, deps)
}

func defaultConfig() Config {
	return Config{
		PhotoRoot:    "photos",
		HeroPath:     "photos/hero.jpg",
		TemplatesDir: "../templates",
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHomePage(t *testing.T) {
	h := testHandler(t, defaultConfig())
	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %v", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "High Fashion") {
		t.Error("home page should list the project title")
	}
	if !strings.Contains(body, "/portfolio/high-fashion") {
		t.Error("home page should link to the project route")
	}
	if !strings.Contains(body, "photos/hero.jpg") {
		t.Error("home page should reference the hero image")
	}
}

func TestHomePageSectionScrollIsPerRequest(t *testing.T) {
	h := testHandler(t, defaultConfig())
	sections := []string{"portfolio", "measurements", "digitals", "contact"}

	// Simultaneous navigations must each scroll to their own section,
	// never to one carried over from another request.
	bodies := make([]string, 16)
	var wg sync.WaitGroup
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/?section="+sections[i%len(sections)], nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			bodies[i] = w.Body.String()
		}(i)
	}
	wg.Wait()

	for i, body := range bodies {
		want := `getElementById("` + sections[i%len(sections)] + `")`
		if !strings.Contains(body, want) {
			t.Errorf("request %d should scroll to %q", i, sections[i%len(sections)])
		}
	}
}

func TestHomePageSectionScroll(t *testing.T) {
	h := testHandler(t, defaultConfig())
	w := get(t, h, "/?section=portfolio")
	if !strings.Contains(w.Body.String(), `scrollIntoView`) {
		t.Error("a section query should emit the scroll target")
	}
	// The pending section is consumed; a plain request has no scroll.
	w = get(t, h, "/")
	if strings.Contains(w.Body.String(), `scrollIntoView`) {
		t.Error("scroll target must not repeat on later requests")
	}
}

func TestProjectPage(t *testing.T) {
	h := testHandler(t, defaultConfig())
	w := get(t, h, "/portfolio/high-fashion")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %v", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "High Fashion") {
		t.Error("project page should carry the title")
	}
	if !strings.Contains(body, "/photos/2026-01-01-high-fashion/") {
		t.Error("project page should reference the gallery images")
	}
}

func TestProjectPageTrailingSlashAndCase(t *testing.T) {
	h := testHandler(t, defaultConfig())
	w := get(t, h, "/portfolio/High-Fashion/")
	if w.Code != http.StatusOK {
		t.Errorf("selection should ignore case and trailing slash, got %v", w.Code)
	}
}

func TestUnknownProjectIsNotFound(t *testing.T) {
	h := testHandler(t, defaultConfig())
	for _, p := range []string{"/portfolio/unknown", "/portfolio/a/b"} {
		w := get(t, h, p)
		if w.Code != http.StatusNotFound {
			t.Errorf("%q: expected 404, got %v", p, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Project not found") {
			t.Errorf("%q: expected the not-found page", p)
		}
	}
}

func TestPhotoServing(t *testing.T) {
	h := testHandler(t, defaultConfig())
	w := get(t, h, "/photos/2026-01-01-high-fashion/a.jpg")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %v", w.Code)
	}
	if w.Body.String() != "aa" {
		t.Errorf("unexpected photo bytes: %q", w.Body.String())
	}
	if w.Header().Get("ETag") == "" {
		t.Error("photo responses should carry an ETag")
	}
}

func TestPhotoMissingIs404(t *testing.T) {
	h := testHandler(t, defaultConfig())
	if w := get(t, h, "/photos/2026-01-01-high-fashion/zz.jpg"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", w.Code)
	}
}

func TestThumbUndecodableIs404(t *testing.T) {
	// The fixture files are not real images, so thumbnailing fails and
	// the slot answers 404 without affecting anything else.
	h := testHandler(t, defaultConfig())
	if w := get(t, h, "/thumbs/photos/2026-01-01-high-fashion/a.jpg"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", w.Code)
	}
}

func TestAdminReloadRequiresAuth(t *testing.T) {
	cfg := defaultConfig()
	cfg.AdminUser = "ashley"
	cfg.AdminPass = "secret"
	h := testHandler(t, cfg)

	if w := get(t, h, "/admin/reload"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %v", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/reload", nil)
	req.SetBasicAuth("ashley", "secret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with credentials, got %v", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("unexpected reload response: %q", w.Body.String())
	}
}
