// Package core turns PCM samples into a dB-scale mel spectrogram, a
// constellation of spectral peaks, and combinatorial hash keys.
package core

import (
	"errors"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Fixed DSP parameters, pinned into every persisted index's models.Header
// so an index built under one set of parameters is never queried against
// samples processed under another.
const (
	WindowSize = 2048
	HopSize    = 512
	MelBands   = 256
	FMinHz     = 0.0
	FMaxHz     = 4000.0

	dBFloor = -100.0
)

// Spectrogram turns mono PCM samples at sampleRate into a dB-scale mel
// spectrogram, matrix[timeFrame][melBand]. dB values are relative to the
// loudest cell in the whole matrix, floored at dBFloor so silence never
// produces -Inf.
func Spectrogram(samples []float32, sampleRate int) ([][]float64, error) {
	if sampleRate <= 0 {
		return nil, errors.New("core: sample rate must be positive")
	}
	if len(samples) < WindowSize {
		return [][]float64{}, nil
	}

	window := hannWindow(WindowSize)
	basis := melFilterbank(sampleRate, WindowSize, MelBands, FMinHz, FMaxHz)

	var matrix [][]float64
	maxEnergy := 0.0

	for start := 0; start+WindowSize <= len(samples); start += HopSize {
		frame := make([]float64, WindowSize)
		for i := 0; i < WindowSize; i++ {
			frame[i] = float64(samples[start+i]) * window[i]
		}

		spectrum := fft.FFTReal(frame)
		nFreqs := WindowSize/2 + 1
		magnitude := make([]float64, nFreqs)
		for i := 0; i < nFreqs; i++ {
			re, im := real(spectrum[i]), imag(spectrum[i])
			magnitude[i] = math.Sqrt(re*re + im*im)
		}

		melEnergy := make([]float64, MelBands)
		for m := 0; m < MelBands; m++ {
			var sum float64
			for k, weight := range basis[m] {
				sum += weight * magnitude[k]
			}
			melEnergy[m] = sum
			if sum > maxEnergy {
				maxEnergy = sum
			}
		}

		matrix = append(matrix, melEnergy)
	}

	if maxEnergy == 0 {
		maxEnergy = 1
	}
	for _, row := range matrix {
		for i, e := range row {
			db := dBFloor
			if e > 0 {
				db = 10 * math.Log10(e/maxEnergy)
				if db < dBFloor {
					db = dBFloor
				}
			}
			row[i] = db
		}
	}

	return matrix, nil
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func hzToMel(f float64) float64 { return 2595 * math.Log10(1+f/700) }
func melToHz(m float64) float64 { return 700 * (math.Pow(10, m/2595) - 1) }

// melFilterbank builds MelBands triangular filters over the [fMin, fMax]
// range, each a weight vector over the windowSize/2+1 linear FFT bins. No
// retrieved library ships a mel filterbank; this is hand-written, following
// the triangular-filter construction used by the pack's mel-processor
// example (see DESIGN.md).
func melFilterbank(sampleRate, windowSize, bands int, fMin, fMax float64) [][]float64 {
	nFreqs := windowSize/2 + 1
	melMin := hzToMel(fMin)
	melMax := hzToMel(fMax)

	points := make([]int, bands+2)
	for i := range points {
		mel := melMin + (melMax-melMin)*float64(i)/float64(bands+1)
		hz := melToHz(mel)
		bin := int(math.Floor(float64(windowSize+1) * hz / float64(sampleRate)))
		if bin < 0 {
			bin = 0
		}
		if bin > nFreqs-1 {
			bin = nFreqs - 1
		}
		points[i] = bin
	}

	basis := make([][]float64, bands)
	for m := 0; m < bands; m++ {
		left, center, right := points[m], points[m+1], points[m+2]
		filter := make([]float64, nFreqs)
		for k := left; k < center; k++ {
			if center != left {
				filter[k] = float64(k-left) / float64(center-left)
			}
		}
		for k := center; k < right; k++ {
			if right != center {
				filter[k] = float64(right-k) / float64(right-center)
			}
		}
		basis[m] = filter
	}
	return basis
}
