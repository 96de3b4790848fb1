// Package library turns the flat photo-root asset snapshot into the
// ordered collection of shoots and digitals the site presents.
package library

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	site "github.com/jrlacey28/ashley-model-site"
	"github.com/jrlacey28/ashley-model-site/content"
)

// shootFolderPattern names a dated shoot: YYYY-MM-DD-<free text>.
// All four groups must be present; anything else is not a shoot.
var shootFolderPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-(.+)$`)

var coverFilePattern = regexp.MustCompile(`(?i)^cover\.(jpg|jpeg|png)$`)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

const digitalsFolder = "digitals"

// maxDigitals caps how many digitals the home page shows.
const maxDigitals = 3

// Config scopes the build to one photo root and names the hero image,
// which belongs to the landing page and never to a shoot.
type Config struct {
	PhotoRoot string
	HeroPath  string
}

type entry struct {
	name string
	open site.Opener
}

type shoot struct {
	folder string
	year   int
	month  int
	day    int
	slug   string
	files  []entry
}

// Slugify derives the public route key from a folder's free-text suffix:
// lower-cased, "&" spelled out, runs of non-alphanumerics collapsed to a
// single hyphen, leading and trailing hyphens trimmed.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonAlnumRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Build partitions the asset snapshot into dated shoots and the digitals
// bucket. It is total: paths that do not fit the layout are dropped, never
// reported. Editorial copy comes from tbl, falling back to a title derived
// from the folder name.
func Build(assets map[string]site.Opener, cfg Config, tbl *content.Table) *site.Library {
	root := strings.Trim(cfg.PhotoRoot, "/")
	prefix := root + "/"

	shoots := make(map[string]*shoot)
	var digitals []site.Asset

	for p, open := range assets {
		if p == cfg.HeroPath {
			continue
		}
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rel := p[len(prefix):]
		segs := strings.Split(rel, "/")
		if len(segs) != 2 || segs[0] == "" || segs[1] == "" {
			continue
		}
		folder, file := segs[0], segs[1]
		if strings.EqualFold(folder, digitalsFolder) {
			digitals = append(digitals, site.Asset{Path: p, Name: file, Open: open})
			continue
		}
		m := shootFolderPattern.FindStringSubmatch(folder)
		if m == nil {
			continue
		}
		sh, ok := shoots[folder]
		if !ok {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			sh = &shoot{
				folder: folder,
				year:   year,
				month:  month,
				day:    day,
				slug:   Slugify(m[4]),
			}
			shoots[folder] = sh
		}
		sh.files = append(sh.files, entry{name: file, open: open})
	}

	ordered := make([]*shoot, 0, len(shoots))
	for _, sh := range shoots {
		ordered = append(ordered, sh)
	}
	// Most recent shoot first; identical dates fall back to descending
	// case-insensitive folder name so the order is total.
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.year != b.year {
			return a.year > b.year
		}
		if a.month != b.month {
			return a.month > b.month
		}
		if a.day != b.day {
			return a.day > b.day
		}
		return strings.ToLower(a.folder) > strings.ToLower(b.folder)
	})

	lib := &site.Library{}
	taken := make(map[string]bool)
	for _, sh := range ordered {
		if len(sh.files) == 0 {
			continue
		}
		sortEntries(sh.files)

		// Two folders can normalize to the same slug. The most recent
		// shoot keeps it; later ones take the first free numeric suffix,
		// skipping suffixes another folder already holds as its base
		// slug. Every project stays reachable.
		slug := sh.slug
		for n := 2; taken[slug]; n++ {
			slug = sh.slug + "-" + strconv.Itoa(n)
		}
		taken[slug] = true

		cover := sh.files[0]
		for _, e := range sh.files {
			if coverFilePattern.MatchString(e.name) {
				cover = e
				break
			}
		}

		gallery := make([]site.Asset, 0, len(sh.files)-1)
		for _, e := range sh.files {
			if e.name == cover.name {
				continue
			}
			gallery = append(gallery, asset(prefix, sh.folder, e))
		}

		coverAsset := asset(prefix, sh.folder, cover)
		background := coverAsset
		if len(gallery) > 0 {
			background = gallery[0]
		}

		lib.Projects = append(lib.Projects, site.Project{
			ID:         sh.folder,
			RouteSlug:  slug,
			Content:    tbl.Lookup(sh.slug),
			Cover:      coverAsset,
			Background: background,
			Gallery:    gallery,
		})
	}

	sort.Slice(digitals, func(i, j int) bool {
		a := strings.ToLower(digitals[i].Name)
		b := strings.ToLower(digitals[j].Name)
		if a != b {
			return a < b
		}
		return digitals[i].Name < digitals[j].Name
	})
	if len(digitals) > maxDigitals {
		digitals = digitals[:maxDigitals]
	}
	lib.Digitals = digitals
	return lib
}

func sortEntries(es []entry) {
	sort.Slice(es, func(i, j int) bool {
		a := strings.ToLower(es[i].name)
		b := strings.ToLower(es[j].name)
		if a != b {
			return a < b
		}
		return es[i].name < es[j].name
	})
}

func asset(prefix, folder string, e entry) site.Asset {
	return site.Asset{
		Path: prefix + folder + "/" + e.name,
		Name: e.name,
		Open: e.open,
	}
}
