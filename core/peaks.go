package core

import "fprint/models"

// PeakNeighborhood is the side length of the square neighborhood the
// maximum filter slides over the spectrogram, in both the time and
// frequency axes.
const PeakNeighborhood = 20

// ExtractPeaks picks local maxima out of a dB-scale mel spectrogram
// (time-major: matrix[frame][band]) and returns them as a sorted,
// deduplicated Constellation.
//
// A cell survives if it equals the max of its PeakNeighborhood×PeakNeighborhood
// neighborhood AND its connected component of tied maxima (8-connectivity)
// is exactly one pixel wide and one pixel tall. Tied plateaus produced by
// the equality mask do not localize a peak and are discarded rather than
// kept as one peak per pixel.
func ExtractPeaks(matrix [][]float64) models.Constellation {
	nFrames := len(matrix)
	if nFrames == 0 {
		return models.Constellation{}
	}
	nBands := len(matrix[0])

	mask := localMaxMask(matrix, PeakNeighborhood)
	labels, numComponents := labelComponents(mask, nFrames, nBands)

	type bbox struct {
		minT, maxT, minF, maxF int
		count                 int
	}
	boxes := make([]bbox, numComponents+1)
	for i := range boxes {
		boxes[i] = bbox{minT: 1 << 30, minF: 1 << 30, maxT: -1, maxF: -1}
	}
	for t := 0; t < nFrames; t++ {
		for f := 0; f < nBands; f++ {
			lbl := labels[t][f]
			if lbl == 0 {
				continue
			}
			b := &boxes[lbl]
			if t < b.minT {
				b.minT = t
			}
			if t > b.maxT {
				b.maxT = t
			}
			if f < b.minF {
				b.minF = f
			}
			if f > b.maxF {
				b.maxF = f
			}
			b.count++
		}
	}

	constellation := make(models.Constellation, 0, numComponents)
	for t := 0; t < nFrames; t++ {
		for f := 0; f < nBands; f++ {
			lbl := labels[t][f]
			if lbl == 0 {
				continue
			}
			b := boxes[lbl]
			if b.maxT-b.minT == 0 && b.maxF-b.minF == 0 {
				constellation = append(constellation, models.Peak{Time: t, Freq: f})
			}
		}
	}

	constellation.Sort()
	return dedupe(constellation)
}

func localMaxMask(matrix [][]float64, window int) [][]bool {
	nFrames := len(matrix)
	nBands := len(matrix[0])
	half := window / 2

	mask := make([][]bool, nFrames)
	for t := 0; t < nFrames; t++ {
		mask[t] = make([]bool, nBands)
		loT, hiT := t-half, t+half
		if loT < 0 {
			loT = 0
		}
		if hiT > nFrames {
			hiT = nFrames
		}
		for f := 0; f < nBands; f++ {
			loF, hiF := f-half, f+half
			if loF < 0 {
				loF = 0
			}
			if hiF > nBands {
				hiF = nBands
			}
			max := matrix[t][f]
			for i := loT; i < hiT; i++ {
				row := matrix[i]
				for j := loF; j < hiF; j++ {
					if row[j] > max {
						max = row[j]
					}
				}
			}
			mask[t][f] = matrix[t][f] == max
		}
	}
	return mask
}

// labelComponents assigns each true cell in mask a component label
// (1-indexed; 0 means "not a local maximum"), using 8-connectivity
// flood fill. Returns the label grid and the number of components.
func labelComponents(mask [][]bool, nFrames, nBands int) ([][]int, int) {
	labels := make([][]int, nFrames)
	for i := range labels {
		labels[i] = make([]int, nBands)
	}

	var stackT, stackF []int
	next := 0
	for t := 0; t < nFrames; t++ {
		for f := 0; f < nBands; f++ {
			if !mask[t][f] || labels[t][f] != 0 {
				continue
			}
			next++
			labels[t][f] = next
			stackT, stackF = append(stackT[:0], t), append(stackF[:0], f)
			for len(stackT) > 0 {
				ct, cf := stackT[len(stackT)-1], stackF[len(stackF)-1]
				stackT, stackF = stackT[:len(stackT)-1], stackF[:len(stackF)-1]
				for dt := -1; dt <= 1; dt++ {
					for df := -1; df <= 1; df++ {
						if dt == 0 && df == 0 {
							continue
						}
						nt, nf := ct+dt, cf+df
						if nt < 0 || nt >= nFrames || nf < 0 || nf >= nBands {
							continue
						}
						if mask[nt][nf] && labels[nt][nf] == 0 {
							labels[nt][nf] = next
							stackT = append(stackT, nt)
							stackF = append(stackF, nf)
						}
					}
				}
			}
		}
	}
	return labels, next
}

func dedupe(c models.Constellation) models.Constellation {
	if len(c) == 0 {
		return c
	}
	out := c[:1]
	for _, p := range c[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
