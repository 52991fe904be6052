package core

import "fprint/models"

// TargetZoneSpan bounds the half-open target zone [i-TargetZoneSpan,
// i+TargetZoneSpan) of list positions around anchor i: up to TargetZoneSpan
// peaks before it, the anchor itself, and up to TargetZoneSpan-1 after it.
// Indexed on constellation
// list position rather than time distance, because the constellation is
// already sorted by (time, freq) and peaks are roughly time-ordered.
const TargetZoneSpan = 20

// Hash pairs every peak in constellation against its target zone and
// appends one Posting per (anchor, target) pair under that pair's key.
// Pairs with the same (f1, f2, dt) across different anchors aggregate into
// that key's posting list.
//
// The target zone is [i-TargetZoneSpan, i+TargetZoneSpan), clamped to the
// sequence bounds at both ends rather than wrapping — an anchor near the
// start of the constellation pairs with fewer targets instead of pairing
// with peaks from the end of the track.
func Hash(trackID string, constellation models.Constellation) map[models.HashKey][]models.Posting {
	out := make(map[models.HashKey][]models.Posting)
	n := len(constellation)

	for i, anchor := range constellation {
		lo := i - TargetZoneSpan
		if lo < 0 {
			lo = 0
		}
		hi := i + TargetZoneSpan
		if hi > n {
			hi = n
		}

		for j := lo; j < hi; j++ {
			target := constellation[j]
			key := models.HashKey{
				F1: uint16(anchor.Freq),
				F2: uint16(target.Freq),
				Dt: int32(target.Time - anchor.Time),
			}
			posting := models.Posting{
				AnchorTime: int32(anchor.Time),
				TrackID:    trackID,
			}
			out[key] = append(out[key], posting)
		}
	}

	return out
}
