package cmd

import (
	"context"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/spf13/cobra"

	"github.com/jrlacey28/ashley-model-site/backup"
	"github.com/jrlacey28/ashley-model-site/crypto"
	"github.com/jrlacey28/ashley-model-site/storage"
	"github.com/jrlacey28/ashley-model-site/storage/remotebackend"
)

var downloadCmd = &cobra.Command{
	Use:   "download <local-path> <remote-path>",
	Short: "Restore a single file from the off-site archive.",
	Long:  "",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runDownload(args[0], args[1])
	},
}

func runDownload(localFilePath, remoteFilePath string) {
	log.SetHandler(text.New(os.Stdout))

	defer log.WithFields(log.Fields{
		"localFilePath":  localFilePath,
		"remoteFilePath": remoteFilePath,
	}).Trace("starting download.").Stop(nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	encryptionKey := getenv("ENCR_KEY")
	b2id := getenv("B2_ACCOUNT_ID")
	b2key := getenv("B2_ACCOUNT_KEY")
	bucketName := getenv("B2_BUCKET_NAME")

	crpt, err := crypto.NewService(encryptionKey)
	if err != nil {
		log.Fatalf("invalid encryption key: %v", err)
	}
	rsBackend, err := remotebackend.NewB2(ctx, b2id, b2key, bucketName)
	if err != nil {
		log.Fatalf("connecting to the remote: %v", err)
	}
	remote := storage.NewRemote(rsBackend, crpt)

	f, err := os.Create(localFilePath)
	if err != nil {
		log.Fatal("could not create the destination file.")
	}
	defer f.Close()

	svc := backup.New(nil, remote)
	if err := svc.Restore(ctx, remoteFilePath, f); err != nil {
		log.Fatalf("restoring %s: %v", remoteFilePath, err)
	}
}
