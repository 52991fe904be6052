package core

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// SpectrogramToImage renders a dB-scale mel spectrogram (as returned by
// Spectrogram) as a grayscale PNG for debugging. Horizontal axis is the mel
// band (low to high), vertical axis is time (top to bottom), brightness is
// loudness at that band and frame. Values are already normalized to
// [dBFloor, 0]; this just rescales them into [0, 255].
func SpectrogramToImage(matrix [][]float64, outputPath string) error {
	if len(matrix) == 0 {
		return os.WriteFile(outputPath, nil, 0o644)
	}
	numFrames := len(matrix)
	numBands := len(matrix[0])

	img := image.NewGray(image.Rect(0, 0, numBands, numFrames))
	for t := 0; t < numFrames; t++ {
		for b := 0; b < numBands; b++ {
			db := matrix[t][b]
			if db < dBFloor {
				db = dBFloor
			}
			intensity := uint8(255 * (db - dBFloor) / -dBFloor)
			img.SetGray(b, t, color.Gray{Y: intensity})
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
