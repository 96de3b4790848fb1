package cmd

import (
	"context"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	site "github.com/jrlacey28/ashley-model-site"
	"github.com/jrlacey28/ashley-model-site/crypto"
	"github.com/jrlacey28/ashley-model-site/metastore"
	"github.com/jrlacey28/ashley-model-site/storage"
	"github.com/jrlacey28/ashley-model-site/storage/remotebackend"
	"github.com/jrlacey28/ashley-model-site/thumbnail"
)

// thumbWorkers bounds the fan-out; decoding full-size photos is the
// expensive part.
const thumbWorkers = 4

var thumbsCmd = &cobra.Command{
	Use:   "thumbs",
	Short: "Pre-generate thumbnails and fill the metadata cache.",
	Run: func(cmd *cobra.Command, args []string) {
		runThumbs()
	},
}

func runThumbs() {
	log.SetHandler(text.New(os.Stderr))
	ctx := context.Background()
	logctx := log.WithField("cmd", "thumbs")

	appFs := afero.NewOsFs()
	local := storage.NewLocal(appFs, crypto.GenerateSha256)
	cache := remotebackend.NewFileSystem(appFs)
	thumbs := thumbnail.NewService(local)

	store, err := metastore.New(viper.GetString("meta_db"))
	if err != nil {
		logctx.Fatalf("opening metadata db: %v", err)
	}
	defer store.Close()

	thumbDir := viper.GetString("thumb_dir")
	files := local.SearchFiles(viper.GetString("photo_root"), ".jpg", ".jpeg", ".png")
	logctx.WithField("files", len(files)).Info("generating thumbnails")

	var mu sync.Mutex
	var recs []*metastore.Record
	var wg sync.WaitGroup
	sem := make(chan struct{}, thumbWorkers)
	for _, fi := range files {
		wg.Add(1)
		go func(fi site.FileInfo) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rec, err := buildRecord(ctx, fi, thumbs, cache, thumbDir)
			if err != nil {
				logctx.WithField("path", fi.FilePath()).Warnf("skipped: %v", err)
				return
			}
			mu.Lock()
			recs = append(recs, rec)
			mu.Unlock()
		}(fi)
	}
	wg.Wait()

	if err := store.Save(recs); err != nil {
		logctx.Fatalf("saving metadata: %v", err)
	}
	logctx.WithField("records", len(recs)).Info("done")
}

func buildRecord(ctx context.Context, fi site.FileInfo, thumbs *thumbnail.Service, cache site.Storage, thumbDir string) (*metastore.Record, error) {
	p := fi.FilePath()
	meta, err := thumbs.Probe(ctx, p)
	if err != nil {
		return nil, err
	}
	b, err := thumbs.Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	thumbName := thumbDir + "/thumb_" + crypto.GenerateSha256([]byte(p)) + ".jpg"
	w := cache.NewWriter(ctx, thumbName)
	if _, err := w.Write(b); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	dir, name := path.Split(p)
	return &metastore.Record{
		Path:      p,
		Dir:       strings.TrimSuffix(dir, "/"),
		Name:      name,
		ThumbName: thumbName,
		Width:     meta.Width,
		Height:    meta.Height,
		TakenAt:   meta.TakenAt,
	}, nil
}
