// Command fprint is the CLI driver for the audio fingerprinting engine:
// build an index from a file or directory, update it incrementally, query
// it with a sample, or serve it over HTTP.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"fprint/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "fprint",
	Short: "Audio fingerprinting engine",
	Long: `fprint builds an inverted hash index over a corpus of audio files
and matches short samples against it, Shazam-style.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(lvl)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("index", "", "path to the index file (overrides FPRINT_INDEX_PATH)")
	rootCmd.PersistentFlags().Int("workers", 0, "worker pool size (0 = host core count)")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	Execute()
}
