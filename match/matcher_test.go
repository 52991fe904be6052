package match

import (
	"testing"

	"fprint/index"
	"fprint/models"

	"github.com/stretchr/testify/assert"
)

func key(f1, f2 uint16, dt int32) models.HashKey {
	return models.HashKey{F1: f1, F2: f2, Dt: dt}
}

func TestMatch_NoOverlapReturnsEmpty(t *testing.T) {
	idx := index.New()
	idx[key(1, 2, 3)] = []models.Posting{{AnchorTime: 10, TrackID: "A"}}

	query := map[models.HashKey][]models.Posting{
		key(9, 9, 9): {{AnchorTime: 0, TrackID: "query"}},
	}

	ranked := Match(query, idx)
	assert.Empty(t, ranked)
}

func TestMatch_CoherentOffsetsRankFirst(t *testing.T) {
	idx := index.New()
	// Track A: every query key's posting is offset by a constant 100.
	for i := int32(0); i < 10; i++ {
		k := key(uint16(i), uint16(i+1), i)
		idx[k] = append(idx[k], models.Posting{AnchorTime: i + 100, TrackID: "A"})
	}
	// Track B: offsets scattered, no coherent cluster.
	for i := int32(0); i < 10; i++ {
		k := key(uint16(i), uint16(i+1), i)
		idx[k] = append(idx[k], models.Posting{AnchorTime: i * 997 % 5000, TrackID: "B"})
	}

	query := map[models.HashKey][]models.Posting{}
	for i := int32(0); i < 10; i++ {
		k := key(uint16(i), uint16(i+1), i)
		query[k] = []models.Posting{{AnchorTime: i, TrackID: "query"}}
	}

	ranked := Match(query, idx)
	if assert.NotEmpty(t, ranked) {
		assert.Equal(t, "A", ranked[0])
	}
}

func TestCoherenceScore_EmptyIsZero(t *testing.T) {
	assert.Equal(t, 0, coherenceScore(nil))
}

func TestCoherenceScore_SingleClusterWins(t *testing.T) {
	d := []int32{100, 101, 102, 103, 5000}
	assert.Equal(t, 4, coherenceScore(d))
}
