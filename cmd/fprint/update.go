package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"fprint/index"
	"fprint/orchestrate"
)

var (
	updateRecursive bool
	updateParallel  bool
)

var updateCmd = &cobra.Command{
	Use:   "update [paths...]",
	Short: "Merge additional files or directories into an existing index",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		indexPath := resolveIndexPath(cmd)
		idx, err := index.Load(indexPath)
		if err != nil {
			if err == index.ErrLoadNoIndex {
				idx = index.New()
			} else {
				return err
			}
		}

		orch := orchestrate.New(resolveWorkers(cmd))
		if err := orch.UpdateIndex(context.Background(), idx, args, updateRecursive, updateParallel); err != nil {
			return err
		}

		if err := index.Save(idx, indexPath); err != nil {
			return err
		}
		log.Info("index updated", "keys", len(idx), "saved_to", indexPath)
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVarP(&updateRecursive, "recursive", "r", false, "descend into subdirectories")
	updateCmd.Flags().BoolVarP(&updateParallel, "parallel", "p", true, "fingerprint files concurrently")
}
