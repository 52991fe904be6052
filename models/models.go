// Package models holds the shared data types that flow between the
// fingerprinting pipeline stages: peaks, constellations, hash keys and
// postings, and the persisted index header.
package models

import "sort"

// Peak is a single spectral landmark: a time-bin / mel-bin coordinate pair.
type Peak struct {
	Time int // time-frame bin index
	Freq int // mel-band bin index
}

// Constellation is a sorted, deduplicated set of Peaks extracted from one
// spectrogram. Sort order is ascending by (Time, Freq).
type Constellation []Peak

func (c Constellation) Len() int      { return len(c) }
func (c Constellation) Swap(i, j int) { c[i], c[j] = c[j], c[i] }
func (c Constellation) Less(i, j int) bool {
	if c[i].Time != c[j].Time {
		return c[i].Time < c[j].Time
	}
	return c[i].Freq < c[j].Freq
}

// Sort orders the constellation by (Time, Freq) ascending, in place.
func (c Constellation) Sort() { sort.Sort(c) }

// HashKey anchors a hash to a frequency pair and a signed time delta. F1/F2
// range over [0, 256) mel bins; Dt is the target frame index minus the
// anchor frame index and may be zero or negative.
type HashKey struct {
	F1, F2 uint16
	Dt     int32
}

// Posting records that TrackID had an anchor peak at time-bin AnchorTime.
type Posting struct {
	AnchorTime int32
	TrackID    string
}

// Header records the fixed DSP parameters an Index was built with. Loading
// an index built under different parameters is refused rather than silently
// mismatched.
type Header struct {
	Version          int
	SampleRate       int
	MelBands         int
	FMaxHz           float64
	WindowSize       int
	HopSize          int
	PeakNeighborhood int
	TargetZoneSpan   int
	HistogramBinSize int
}
