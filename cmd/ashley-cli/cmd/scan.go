package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jrlacey28/ashley-model-site/content"
	"github.com/jrlacey28/ashley-model-site/crypto"
	"github.com/jrlacey28/ashley-model-site/library"
	"github.com/jrlacey28/ashley-model-site/storage"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Group the photo root and print the resulting library.",
	Run: func(cmd *cobra.Command, args []string) {
		runScan()
	},
}

func runScan() {
	log.SetHandler(text.New(os.Stderr))
	ctx := context.Background()

	local := storage.NewLocal(afero.NewOsFs(), crypto.GenerateSha256)
	tbl, err := content.Load(ctx, local, viper.GetString("content_path"))
	if err != nil {
		log.Warnf("no content table: %v", err)
	}

	cfg := library.Config{
		PhotoRoot: viper.GetString("photo_root"),
		HeroPath:  viper.GetString("hero_path"),
	}
	lib := library.NewService(local, cfg, tbl).Library(ctx)

	for _, p := range lib.Projects {
		fmt.Printf("%s\n", p.ID)
		fmt.Printf("  slug:       /portfolio/%s\n", p.RouteSlug)
		fmt.Printf("  title:      %s\n", p.Title)
		fmt.Printf("  cover:      %s\n", p.Cover.Name)
		fmt.Printf("  background: %s\n", p.Background.Name)
		fmt.Printf("  gallery:    %d images\n", len(p.Gallery))
	}
	fmt.Printf("digitals: %d\n", len(lib.Digitals))
}
