package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fprint/index"
	"fprint/orchestrate"
)

var queryCmd = &cobra.Command{
	Use:   "query [sample]",
	Short: "Rank the index's tracks against a sample file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := index.Load(resolveIndexPath(cmd))
		if err != nil {
			return err
		}

		orch := orchestrate.New(resolveWorkers(cmd))
		ranked, err := orch.Query(idx, args[0])
		if err != nil {
			return err
		}

		if len(ranked) == 0 {
			fmt.Println("no match")
			return nil
		}
		for i, trackID := range ranked {
			fmt.Printf("%d. %s\n", i+1, trackID)
		}
		return nil
	},
}
