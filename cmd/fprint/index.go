package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"fprint/index"
	"fprint/orchestrate"
)

var (
	indexRecursive bool
	indexParallel  bool
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build a fresh index from a file or directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		orch := orchestrate.New(resolveWorkers(cmd))

		idx, err := orch.CreateIndex(context.Background(), path, indexRecursive, indexParallel)
		if err != nil {
			return err
		}

		indexPath := resolveIndexPath(cmd)
		if err := index.Save(idx, indexPath); err != nil {
			return err
		}
		log.Info("index built", "tracks_source", path, "keys", len(idx), "saved_to", indexPath)
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVarP(&indexRecursive, "recursive", "r", false, "descend into subdirectories")
	indexCmd.Flags().BoolVarP(&indexParallel, "parallel", "p", true, "fingerprint files concurrently")
}
