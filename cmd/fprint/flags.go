package main

import "github.com/spf13/cobra"

func resolveIndexPath(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString("index"); v != "" {
		return v
	}
	return cfg.IndexPath
}

func resolveWorkers(cmd *cobra.Command) int {
	if v, _ := cmd.Flags().GetInt("workers"); v != 0 {
		return v
	}
	return cfg.Workers
}
