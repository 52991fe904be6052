package main

import (
	"github.com/spf13/cobra"

	"fprint/core"
	"fprint/fileformat"
)

var debugSpectrogramCmd = &cobra.Command{
	Use:    "debug-spectrogram [input] [output.png]",
	Short:  "Render a file's mel spectrogram to a PNG for visual inspection",
	Hidden: true,
	Args:   cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pcm, err := fileformat.Decode(args[0])
		if err != nil {
			return err
		}
		matrix, err := core.Spectrogram(pcm, fileformat.TargetSampleRate)
		if err != nil {
			return err
		}
		return core.SpectrogramToImage(matrix, args[1])
	},
}

func init() {
	rootCmd.AddCommand(debugSpectrogramCmd)
}
