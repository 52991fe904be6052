// Package match ranks candidate tracks against a query's hash set by
// time-coherence: the query and a true match share a near-constant time
// offset across many colliding hashes, while false positives scatter.
package match

import (
	"sort"

	"fprint/index"
	"fprint/models"
)

// HistogramBinWidth is the bin width, in time-bins, used to score the
// coherence of a track's offset-difference distribution.
const HistogramBinWidth = 150

// Match ranks the tracks in idx against queryHashes, most likely first.
// Tracks with no offset-difference evidence at all are omitted.
func Match(queryHashes map[models.HashKey][]models.Posting, idx index.Index) []string {
	offsets := map[string][]int32{}
	var order []string
	seen := map[string]bool{}

	for key, queryPostings := range queryHashes {
		indexPostings, ok := idx[key]
		if !ok {
			continue
		}
		for _, q := range queryPostings {
			for _, db := range indexPostings {
				diff := db.AnchorTime - q.AnchorTime
				if !seen[db.TrackID] {
					seen[db.TrackID] = true
					order = append(order, db.TrackID)
				}
				offsets[db.TrackID] = append(offsets[db.TrackID], diff)
			}
		}
	}

	type scored struct {
		trackID string
		score   int
	}
	results := make([]scored, 0, len(order))
	for _, trackID := range order {
		results = append(results, scored{trackID: trackID, score: coherenceScore(offsets[trackID])})
	}

	// Primary order is score descending. Go map iteration order is
	// randomized, so insertion order alone cannot serve as a deterministic
	// tie-break; track ID ascending does.
	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].trackID < results[j].trackID
	})

	ranked := make([]string, len(results))
	for i, r := range results {
		ranked[i] = r.trackID
	}
	return ranked
}

// coherenceScore bins D into HistogramBinWidth-wide buckets starting at
// min(D) and returns the count of the most populated bucket.
func coherenceScore(d []int32) int {
	if len(d) == 0 {
		return 0
	}
	min, max := d[0], d[0]
	for _, v := range d {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	numBins := int((max-min)/HistogramBinWidth) + 1
	bins := make([]int, numBins)
	for _, v := range d {
		bin := int((v - min) / HistogramBinWidth)
		bins[bin]++
	}

	best := 0
	for _, c := range bins {
		if c > best {
			best = c
		}
	}
	return best
}
