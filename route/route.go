// Package route maps URL paths to selections over the project library
// and tracks the pending scroll target used when jumping back to a home
// page section from a project view.
package route

import (
	"net/url"
	"regexp"
	"strings"
	"sync"

	site "github.com/jrlacey28/ashley-model-site"
)

const portfolioPrefix = "/portfolio"

var projectPathPattern = regexp.MustCompile(`^/portfolio/([^/]+)/?$`)

// Normalize canonicalizes a path: "" and "/" become "/"; everything else
// gets exactly one leading slash and no trailing slashes. Idempotent.
func Normalize(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed
}

// ProjectSlugFromPath extracts the route slug from a project detail path.
// Only /portfolio/<segment> matches, with at most one trailing slash; the
// segment is percent-decoded and lower-cased. Nested paths do not match.
func ProjectSlugFromPath(path string) (string, bool) {
	m := projectPathPattern.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	seg, err := url.PathUnescape(m[1])
	if err != nil {
		return "", false
	}
	return strings.ToLower(seg), true
}

// ProjectPathFor is the inverse of ProjectSlugFromPath.
func ProjectPathFor(slug string) string {
	return portfolioPrefix + "/" + url.PathEscape(slug)
}

type Kind int

const (
	// KindHome selects the landing page. Paths outside /portfolio
	// normalize to the home view.
	KindHome Kind = iota
	// KindProject selects one shoot by its route slug.
	KindProject
	// KindNotFound is a portfolio-shaped path with no matching project.
	// Distinct from KindHome so the site can answer with a recoverable
	// "project not found" page.
	KindNotFound
)

type Selection struct {
	Kind    Kind
	Project *site.Project
}

// Select resolves a path against the library. It is a pure function of
// its inputs: history movements and explicit navigations go through the
// same resolution. Anything under /portfolio that does not name a known
// project, including nested paths like /portfolio/a/b, is KindNotFound.
func Select(path string, lib *site.Library) Selection {
	path = Normalize(path)
	if !isPortfolioPath(path) {
		return Selection{Kind: KindHome}
	}
	if slug, ok := ProjectSlugFromPath(path); ok && lib != nil {
		for i := range lib.Projects {
			if lib.Projects[i].RouteSlug == slug {
				return Selection{Kind: KindProject, Project: &lib.Projects[i]}
			}
		}
	}
	return Selection{Kind: KindNotFound}
}

func isPortfolioPath(path string) bool {
	if !strings.HasPrefix(path, portfolioPrefix) {
		return false
	}
	return len(path) == len(portfolioPrefix) || path[len(portfolioPrefix)] == '/'
}

// Router serializes navigation state: the current normalized path and the
// pending section to scroll to once the home view is active. One
// transition completes before the next is considered.
type Router struct {
	mu      sync.Mutex
	path    string
	pending string
}

func NewRouter() *Router {
	return &Router{path: "/"}
}

// Navigate moves to a new path. A plain navigation supersedes any pending
// section from an earlier transition.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.path = Normalize(path)
	r.pending = ""
	r.mu.Unlock()
}

// NavigateToSection moves to the home path and records the section that
// should be scrolled into view once the home view renders.
func (r *Router) NavigateToSection(section string) {
	r.mu.Lock()
	r.path = "/"
	r.pending = section
	r.mu.Unlock()
}

// ConsumePendingSection hands out the recorded section exactly once.
func (r *Router) ConsumePendingSection() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == "" {
		return "", false
	}
	section := r.pending
	r.pending = ""
	return section, true
}

// Path reports the current normalized path.
func (r *Router) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}
