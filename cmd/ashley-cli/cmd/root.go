package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ashley-cli",
	Short: "Maintenance tooling for the portfolio site.",
	Long: `ashley-cli maintains the portfolio site's photo library:
it inspects the grouped shoots, pre-generates thumbnails and mirrors
the originals to the encrypted off-site archive.`,
}

// Execute runs the root command; called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ashley-site.yaml)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(thumbsCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(downloadCmd)
}

// initConfig reads the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".ashley-site")
	}

	viper.SetDefault("photo_root", "photos")
	viper.SetDefault("hero_path", "photos/hero.jpg")
	viper.SetDefault("content_path", "content.json")
	viper.SetDefault("thumb_dir", ".thumbs")
	viper.SetDefault("meta_db", "site-meta.db")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func mustGet(key string) string {
	v := viper.GetString(key)
	if v == "" {
		panic("missing required setting " + key)
	}
	return v
}
