package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectrogram_ShortSampleYieldsNoFrames(t *testing.T) {
	samples := make([]float32, WindowSize-1)
	matrix, err := Spectrogram(samples, 22050)
	require.NoError(t, err)
	assert.Empty(t, matrix)
}

func TestSpectrogram_RejectsNonPositiveSampleRate(t *testing.T) {
	_, err := Spectrogram(make([]float32, WindowSize*4), 0)
	assert.Error(t, err)
}

func TestSpectrogram_ShapeIsMelBandsWide(t *testing.T) {
	samples := make([]float32, WindowSize*4)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 22050))
	}
	matrix, err := Spectrogram(samples, 22050)
	require.NoError(t, err)
	require.NotEmpty(t, matrix)
	for _, row := range matrix {
		assert.Len(t, row, MelBands)
	}
}

func TestSpectrogram_ValuesAreNormalizedDb(t *testing.T) {
	samples := make([]float32, WindowSize*4)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 22050))
	}
	matrix, err := Spectrogram(samples, 22050)
	require.NoError(t, err)

	foundZero := false
	for _, row := range matrix {
		for _, v := range row {
			assert.LessOrEqual(t, v, 0.0)
			assert.GreaterOrEqual(t, v, dBFloor)
			if v == 0 {
				foundZero = true
			}
		}
	}
	assert.True(t, foundZero, "matrix-wide max should normalize to 0 dB")
}

func TestSpectrogram_SilenceIsAllFloor(t *testing.T) {
	samples := make([]float32, WindowSize*4)
	matrix, err := Spectrogram(samples, 22050)
	require.NoError(t, err)
	for _, row := range matrix {
		for _, v := range row {
			assert.Equal(t, dBFloor, v)
		}
	}
}
