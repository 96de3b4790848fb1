package route

import (
	"testing"

	site "github.com/jrlacey28/ashley-model-site"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                  "/",
		"/":                 "/",
		"///":               "/",
		"portfolio":         "/portfolio",
		"/portfolio/":       "/portfolio",
		"/portfolio///":     "/portfolio",
		"//portfolio/x":     "/portfolio/x",
		"/about/":           "/about",
		"/portfolio/a/b/":   "/portfolio/a/b",
	}
	for in, want := range cases {
		got := Normalize(in)
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
		if again := Normalize(got); again != got {
			t.Errorf("Normalize is not idempotent on %q: %q != %q", in, again, got)
		}
	}
}

func TestProjectSlugFromPath(t *testing.T) {
	if slug, ok := ProjectSlugFromPath("/portfolio/High-Fashion/"); !ok || slug != "high-fashion" {
		t.Errorf("expected high-fashion, got %q ok=%v", slug, ok)
	}
	if slug, ok := ProjectSlugFromPath("/portfolio/new%20york"); !ok || slug != "new york" {
		t.Errorf("expected decoded segment, got %q ok=%v", slug, ok)
	}
	for _, p := range []string{"/", "/portfolio", "/portfolio/", "/portfolio/a/b", "/about"} {
		if _, ok := ProjectSlugFromPath(p); ok {
			t.Errorf("%q should not match the project path shape", p)
		}
	}
}

func TestProjectPathRoundTrip(t *testing.T) {
	for _, slug := range []string{"high-fashion", "new york", "90s-revival"} {
		got, ok := ProjectSlugFromPath(ProjectPathFor(slug))
		if !ok || got != slug {
			t.Errorf("round trip for %q gave %q ok=%v", slug, got, ok)
		}
	}
}

func testLibrary() *site.Library {
	return &site.Library{Projects: []site.Project{
		{ID: "2026-01-01-high-fashion", RouteSlug: "high-fashion"},
		{ID: "2026-02-02-city-lights", RouteSlug: "city-lights"},
	}}
}

func TestSelect(t *testing.T) {
	lib := testLibrary()

	sel := Select("/portfolio/High-Fashion/", lib)
	if sel.Kind != KindProject || sel.Project == nil || sel.Project.RouteSlug != "high-fashion" {
		t.Errorf("expected the high-fashion project, got %+v", sel)
	}

	if sel := Select("/", lib); sel.Kind != KindHome {
		t.Errorf("root should select home, got %+v", sel)
	}
	if sel := Select("/about", lib); sel.Kind != KindHome {
		t.Errorf("non-portfolio paths select home, got %+v", sel)
	}
	if sel := Select("/portfolio/unknown", lib); sel.Kind != KindNotFound {
		t.Errorf("unknown slug should be not-found, got %+v", sel)
	}
	if sel := Select("/portfolio/a/b", lib); sel.Kind != KindNotFound {
		t.Errorf("nested portfolio paths should be not-found, got %+v", sel)
	}
	if sel := Select("/portfolio-press", lib); sel.Kind != KindHome {
		t.Errorf("prefix look-alikes are not portfolio paths, got %+v", sel)
	}
	if sel := Select("/portfolio/high-fashion", nil); sel.Kind != KindNotFound {
		t.Errorf("empty library yields not-found, got %+v", sel)
	}
}

func TestRouterPendingSectionConsumedOnce(t *testing.T) {
	r := NewRouter()
	r.Navigate("/portfolio/high-fashion")
	r.NavigateToSection("portfolio")

	if r.Path() != "/" {
		t.Errorf("section navigation should land on the root, got %q", r.Path())
	}
	section, ok := r.ConsumePendingSection()
	if !ok || section != "portfolio" {
		t.Fatalf("expected pending section, got %q ok=%v", section, ok)
	}
	if _, ok := r.ConsumePendingSection(); ok {
		t.Error("pending section must be consumed exactly once")
	}
}

func TestRouterNavigationClearsPendingSection(t *testing.T) {
	r := NewRouter()
	r.NavigateToSection("measurements")
	r.Navigate("/portfolio/city-lights")
	if _, ok := r.ConsumePendingSection(); ok {
		t.Error("a plain navigation supersedes the pending section")
	}
	if r.Path() != "/portfolio/city-lights" {
		t.Errorf("unexpected path %q", r.Path())
	}
}
