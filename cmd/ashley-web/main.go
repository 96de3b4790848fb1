package main

import (
	"context"
	"net/http"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"

	"github.com/jrlacey28/ashley-model-site/content"
	"github.com/jrlacey28/ashley-model-site/crypto"
	"github.com/jrlacey28/ashley-model-site/library"
	"github.com/jrlacey28/ashley-model-site/metastore"
	"github.com/jrlacey28/ashley-model-site/storage"
	"github.com/jrlacey28/ashley-model-site/storage/remotebackend"
	"github.com/jrlacey28/ashley-model-site/thumbnail"
	"github.com/jrlacey28/ashley-model-site/web"
)

func getenv(n, fallback string) string {
	if v := os.Getenv(n); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.SetHandler(text.New(os.Stderr))
	godotenv.Load("settings.env")

	ctx := context.Background()
	photoRoot := getenv("PHOTO_ROOT", "photos")
	heroPath := getenv("HERO_PATH", photoRoot+"/hero.jpg")
	contentPath := getenv("CONTENT_PATH", "content.json")
	addr := getenv("HTTP_ADDR", ":5000")

	appFs := afero.NewOsFs()
	local := storage.NewLocal(appFs, crypto.GenerateSha256)

	tbl, err := content.Load(ctx, local, contentPath)
	if err != nil {
		log.Warnf("no content table (%v) - falling back to derived titles", err)
	}

	deps := web.Deps{
		Library: library.NewService(local, library.Config{PhotoRoot: photoRoot, HeroPath: heroPath}, tbl),
		Photos:  local,
		Thumbs:  thumbnail.NewService(local),
		Cache:   remotebackend.NewFileSystem(appFs),
		Content: tbl,
	}
	if dbPath := os.Getenv("META_DB"); dbPath != "" {
		store, err := metastore.New(dbPath)
		if err != nil {
			log.Fatalf("opening metadata db: %v", err)
		}
		defer store.Close()
		deps.Meta = store
	}

	handler := web.New(web.Config{
		PhotoRoot:    photoRoot,
		HeroPath:     heroPath,
		TemplatesDir: getenv("TEMPLATES_DIR", "templates"),
		PublicDir:    getenv("PUBLIC_DIR", "public"),
		AdminUser:    os.Getenv("SITE_USERNAME"),
		AdminPass:    os.Getenv("SITE_PASSWORD"),
	}, deps)

	log.WithField("addr", addr).Info("serving")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
