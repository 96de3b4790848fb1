package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/multi"
	"github.com/apex/log/handlers/text"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jrlacey28/ashley-model-site/backup"
	"github.com/jrlacey28/ashley-model-site/crypto"
	"github.com/jrlacey28/ashley-model-site/storage"
	"github.com/jrlacey28/ashley-model-site/storage/remotebackend"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Mirror the photo library to the encrypted off-site archive.",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		runBackup()
	},
}

func getenv(n string) string {
	v := os.Getenv(n)
	if v == "" {
		panic("could not find env var " + n)
	}
	return v
}

func runBackup() {
	logFile, err := os.Create("log.json")
	if err != nil {
		log.Fatal("error creating log file")
	}
	defer logFile.Close()
	log.SetHandler(multi.New(
		text.New(os.Stderr),
		json.New(logFile),
	))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer close(sigs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := mustGet("photo_root")
	logctx := log.WithFields(log.Fields{
		"cmd":        "backup",
		"photo_root": root,
	})

	encryptionKey := getenv("ENCR_KEY")
	b2id := getenv("B2_ACCOUNT_ID")
	b2key := getenv("B2_ACCOUNT_KEY")
	bucketName := getenv("B2_BUCKET_NAME")
	crpt, err := crypto.NewService(encryptionKey)
	if err != nil {
		logctx.Fatalf("invalid encryption key: %v", err)
	}
	rsBackend, err := remotebackend.NewB2(ctx, b2id, b2key, bucketName)
	if err != nil {
		logctx.Fatalf("connecting to the remote: %v", err)
	}
	remote := storage.NewRemote(rsBackend, crpt)

	go func() {
		for range sigs {
			logctx.Warn("SIGINT or SIGTERM - terminating...")
			cancel()
			return
		}
	}()

	appFs := afero.NewOsFs()
	local := storage.NewLocal(appFs, crypto.GenerateSha256)
	if err := backup.New(local, remote).Run(ctx, logctx, root); err != nil {
		logctx.Fatalf("backup failed: %v", err)
	}
	logctx.Info("done.")
}
