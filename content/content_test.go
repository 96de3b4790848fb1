package content

import (
	"context"
	"testing"

	"github.com/jrlacey28/ashley-model-site/crypto"
	"github.com/jrlacey28/ashley-model-site/storage"
	"github.com/spf13/afero"
)

const doc = `{
	"site": {
		"name": "Ashley",
		"tagline": "Model / Los Angeles",
		"measurements": {"height": "5'9\"", "shoe": "8.5"}
	},
	"default": {"category": "Editorial", "description": "Selected work."},
	"projects": {
		"high-fashion": {"title": "High Fashion", "header": "FW Campaign", "category": "Campaign"}
	}
}`

func load(t *testing.T) *Table {
	t.Helper()
	afs := afero.NewMemMapFs()
	afero.WriteFile(afs, "content.json", []byte(doc), 0644)
	tbl, err := Load(context.Background(), storage.NewLocal(afs, crypto.GenerateSha256), "content.json")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return tbl
}

func TestLoad(t *testing.T) {
	tbl := load(t)
	if tbl.Site.Name != "Ashley" {
		t.Errorf("unexpected site name %q", tbl.Site.Name)
	}
	if tbl.Site.Measurements.Shoe != "8.5" {
		t.Errorf("unexpected shoe size %q", tbl.Site.Measurements.Shoe)
	}
}

func TestLookupHit(t *testing.T) {
	c := load(t).Lookup("high-fashion")
	if c.Title != "High Fashion" || c.Header != "FW Campaign" || c.Category != "Campaign" {
		t.Errorf("table record should be used as-is: %+v", c)
	}
}

func TestLookupFallback(t *testing.T) {
	c := load(t).Lookup("city-lights")
	if c.Title != "City Lights" {
		t.Errorf("expected title-cased slug, got %q", c.Title)
	}
	if c.Category != "Editorial" || c.Description != "Selected work." {
		t.Errorf("expected the default record fields: %+v", c)
	}
}

func TestLookupNilTable(t *testing.T) {
	var tbl *Table
	c := tbl.Lookup("city-lights")
	if c.Title != "City Lights" || c.Category != "" {
		t.Errorf("nil table should still derive a title: %+v", c)
	}
}

func TestTitleFromSlug(t *testing.T) {
	cases := map[string]string{
		"high-fashion":  "High Fashion",
		"city":          "City",
		"90s-revival":   "90s Revival",
		"a--b":          "A B",
		"":              "",
	}
	for in, want := range cases {
		if got := TitleFromSlug(in); got != want {
			t.Errorf("TitleFromSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	afs := afero.NewMemMapFs()
	_, err := Load(context.Background(), storage.NewLocal(afs, crypto.GenerateSha256), "content.json")
	if err == nil {
		t.Error("expected an error for a missing document")
	}
}
