// Package content holds the editorial copy for the site: per-project
// records keyed by route slug, plus the site-wide home page content.
package content

import (
	"context"
	"encoding/json"
	"strings"

	site "github.com/jrlacey28/ashley-model-site"
)

type Record struct {
	Title       string `json:"title"`
	Header      string `json:"header"`
	Category    string `json:"category"`
	Subtext     string `json:"subtext"`
	Description string `json:"description"`
}

// Measurements is the stats card on the home page.
type Measurements struct {
	Height string `json:"height"`
	Bust   string `json:"bust"`
	Waist  string `json:"waist"`
	Hips   string `json:"hips"`
	Shoe   string `json:"shoe"`
	Hair   string `json:"hair"`
	Eyes   string `json:"eyes"`
}

type Site struct {
	Name         string       `json:"name"`
	Tagline      string       `json:"tagline"`
	Email        string       `json:"email"`
	Instagram    string       `json:"instagram"`
	Measurements Measurements `json:"measurements"`
}

type Table struct {
	Site     Site              `json:"site"`
	Default  Record            `json:"default"`
	Projects map[string]Record `json:"projects"`
}

// Load decodes the content document. The reader abstraction keeps the
// document source interchangeable (local file, remote mirror, test fs).
func Load(ctx context.Context, rs site.StorageReader, path string) (*Table, error) {
	r, err := rs.NewReader(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Lookup resolves the copy for a route slug. Slugs missing from the table
// get the default record with the title derived from the slug itself.
// A nil table behaves like an empty one.
func (t *Table) Lookup(slug string) site.Content {
	if t != nil {
		if rec, ok := t.Projects[slug]; ok {
			return site.Content{
				Title:       rec.Title,
				Header:      rec.Header,
				Category:    rec.Category,
				Subtext:     rec.Subtext,
				Description: rec.Description,
			}
		}
	}
	c := site.Content{Title: TitleFromSlug(slug)}
	if t != nil {
		c.Header = t.Default.Header
		c.Category = t.Default.Category
		c.Subtext = t.Default.Subtext
		c.Description = t.Default.Description
	}
	return c
}

// TitleFromSlug title-cases a route slug: "high-fashion" -> "High Fashion".
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	out := words[:0]
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, strings.ToUpper(w[:1])+w[1:])
	}
	return strings.Join(out, " ")
}
