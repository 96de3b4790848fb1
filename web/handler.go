// Package web serves the portfolio site: the landing page, the project
// detail pages, the photo and thumbnail routes, and the admin surface.
package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/aymerick/raymond"
	"github.com/goji/httpauth"
	"github.com/gorilla/mux"

	site "github.com/jrlacey28/ashley-model-site"
	"github.com/jrlacey28/ashley-model-site/content"
	"github.com/jrlacey28/ashley-model-site/crypto"
	"github.com/jrlacey28/ashley-model-site/library"
	"github.com/jrlacey28/ashley-model-site/metastore"
	"github.com/jrlacey28/ashley-model-site/route"
	"github.com/jrlacey28/ashley-model-site/thumbnail"
)

type Config struct {
	PhotoRoot    string
	HeroPath     string
	TemplatesDir string
	PublicDir    string
	AdminUser    string
	AdminPass    string
}

// Deps are the collaborators the handler serves from. Cache and Meta are
// optional: without them thumbnails are generated per request.
type Deps struct {
	Library *library.Service
	Photos  site.ReadOnlyStorage
	Thumbs  *thumbnail.Service
	Cache   site.Storage
	Meta    *metastore.Store
	Content *content.Table
}

type handler struct {
	cfg    Config
	deps   Deps
	router *route.Router
}

// New builds the site's HTTP handler.
func New(cfg Config, deps Deps) http.Handler {
	h := &handler{cfg: cfg, deps: deps, router: route.NewRouter()}

	r := mux.NewRouter()
	r.HandleFunc("/", h.home).Methods(http.MethodGet)
	r.PathPrefix("/portfolio").HandlerFunc(h.project).Methods(http.MethodGet)
	r.PathPrefix("/" + strings.Trim(cfg.PhotoRoot, "/") + "/").HandlerFunc(h.photo).Methods(http.MethodGet)
	r.PathPrefix("/thumbs/").HandlerFunc(h.thumb).Methods(http.MethodGet)

	admin := mux.NewRouter()
	admin.HandleFunc("/admin/reload", h.reload)
	var adminHandler http.Handler = admin
	if cfg.AdminUser != "" {
		adminHandler = httpauth.SimpleBasicAuth(cfg.AdminUser, cfg.AdminPass)(admin)
	}
	r.PathPrefix("/admin/").Handler(adminHandler)

	if cfg.PublicDir != "" {
		r.PathPrefix("/public/").Handler(http.StripPrefix("/public/", http.FileServer(http.Dir(cfg.PublicDir))))
	}
	return logRequests(r)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Debug("request")
		next.ServeHTTP(w, r)
	})
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	lib := h.deps.Library.Library(r.Context())

	// Jumping back from a project page carries the target section as a
	// query param. The router records the navigation; the scroll target
	// itself stays with the request, so concurrent navigations cannot
	// steal each other's section.
	scrollTo := r.URL.Query().Get("section")
	if scrollTo != "" {
		h.router.NavigateToSection(scrollTo)
	} else {
		h.router.Navigate(r.URL.Path)
	}

	projects := make([]map[string]interface{}, 0, len(lib.Projects))
	for _, p := range lib.Projects {
		projects = append(projects, map[string]interface{}{
			"title":    p.Title,
			"category": p.Category,
			"url":      route.ProjectPathFor(p.RouteSlug),
			"cover":    "/" + p.Cover.Path,
			"thumb":    "/thumbs/" + p.Cover.Path,
		})
	}
	digitals := make([]map[string]interface{}, 0, len(lib.Digitals))
	for _, d := range lib.Digitals {
		digitals = append(digitals, map[string]interface{}{
			"url":   "/" + d.Path,
			"thumb": "/thumbs/" + d.Path,
		})
	}

	h.render(w, http.StatusOK, "index.hbs", map[string]interface{}{
		"site":         h.siteContent(),
		"measurements": h.measurements(),
		"hero":         "/" + h.cfg.HeroPath,
		"projects":     projects,
		"digitals":     digitals,
		"scrollTo":     scrollTo,
	})
}

func (h *handler) project(w http.ResponseWriter, r *http.Request) {
	lib := h.deps.Library.Library(r.Context())
	h.router.Navigate(r.URL.Path)

	sel := route.Select(r.URL.Path, lib)
	if sel.Kind != route.KindProject {
		h.render(w, http.StatusNotFound, "notfound.hbs", map[string]interface{}{
			"site":      h.siteContent(),
			"portfolio": "/?section=portfolio",
		})
		return
	}

	p := sel.Project
	gallery := make([]map[string]interface{}, 0, len(p.Gallery))
	for _, g := range p.Gallery {
		gallery = append(gallery, map[string]interface{}{
			"url":   "/" + g.Path,
			"thumb": "/thumbs/" + g.Path,
		})
	}
	h.render(w, http.StatusOK, "project.hbs", map[string]interface{}{
		"site":        h.siteContent(),
		"title":       p.Title,
		"header":      p.Header,
		"category":    p.Category,
		"subtext":     p.Subtext,
		"description": p.Description,
		"background":  "/" + p.Background.Path,
		"cover":       "/" + p.Cover.Path,
		"gallery":     gallery,
		"portfolio":   "/?section=portfolio",
	})
}

// photo serves original bytes from the photo root. The content hash is
// the ETag, so browsers revalidate cheaply.
func (h *handler) photo(w http.ResponseWriter, r *http.Request) {
	p, ok := h.assetPath(r.URL.Path, "/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	rd, err := h.deps.Photos.NewReader(r.Context(), p)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer rd.Close()
	b, err := io.ReadAll(rd)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("ETag", `"`+crypto.GenerateSha256(b)+`"`)
	http.ServeContent(w, r, path.Base(p), time.Time{}, bytes.NewReader(b))
}

// thumb serves the cached thumbnail when the metadata cache holds one,
// and falls back to generating it on the fly. An asset whose image
// cannot be decoded answers 404: the slot stays empty, nothing else is
// affected.
func (h *handler) thumb(w http.ResponseWriter, r *http.Request) {
	p, ok := h.assetPath(r.URL.Path, "/thumbs/")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if h.deps.Meta != nil && h.deps.Cache != nil {
		if rec, err := h.deps.Meta.GetByPath(p); err == nil && rec != nil && rec.ThumbName != "" {
			if rd, err := h.deps.Cache.NewReader(r.Context(), rec.ThumbName); err == nil {
				defer rd.Close()
				w.Header().Set("Content-Type", "image/jpeg")
				io.Copy(w, rd)
				return
			}
		}
	}

	b, err := h.deps.Thumbs.Generate(r.Context(), p)
	if err != nil {
		log.WithField("path", p).Warnf("no thumbnail: %v", err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(b)
}

func (h *handler) reload(w http.ResponseWriter, r *http.Request) {
	lib := h.deps.Library.Reload(r.Context())
	fmt.Fprintf(w, "ok - %d projects, %d digitals", len(lib.Projects), len(lib.Digitals))
}

// assetPath strips the route prefix and confines the result to the
// photo root.
func (h *handler) assetPath(urlPath, prefix string) (string, bool) {
	p := path.Clean(strings.TrimPrefix(urlPath, prefix))
	root := strings.Trim(h.cfg.PhotoRoot, "/")
	if p != root && !strings.HasPrefix(p, root+"/") {
		return "", false
	}
	return p, true
}

func (h *handler) siteContent() content.Site {
	if h.deps.Content == nil {
		return content.Site{}
	}
	return h.deps.Content.Site
}

func (h *handler) measurements() map[string]string {
	s := h.siteContent()
	return map[string]string{
		"height": s.Measurements.Height,
		"bust":   s.Measurements.Bust,
		"waist":  s.Measurements.Waist,
		"hips":   s.Measurements.Hips,
		"shoe":   s.Measurements.Shoe,
		"hair":   s.Measurements.Hair,
		"eyes":   s.Measurements.Eyes,
	}
}

func (h *handler) render(w http.ResponseWriter, status int, name string, ctx map[string]interface{}) {
	tmpl, err := raymond.ParseFile(filepath.Join(h.cfg.TemplatesDir, name))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result, err := tmpl.Exec(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, result)
}
