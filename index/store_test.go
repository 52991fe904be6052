package index

import (
	"path/filepath"
	"testing"

	"fprint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func randomIndex(rt *rapid.T) Index {
	idx := New()
	n := rapid.IntRange(0, 20).Draw(rt, "n")
	for i := 0; i < n; i++ {
		key := models.HashKey{
			F1: uint16(rapid.IntRange(0, 255).Draw(rt, "f1")),
			F2: uint16(rapid.IntRange(0, 255).Draw(rt, "f2")),
			Dt: int32(rapid.IntRange(-100, 100).Draw(rt, "dt")),
		}
		idx[key] = append(idx[key], models.Posting{
			AnchorTime: int32(rapid.IntRange(0, 10000).Draw(rt, "anchor")),
			TrackID:    rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "track"),
		})
	}
	return idx
}

func assertIndexEqual(t require.TestingT, a, b Index) {
	require.Equal(t, len(a), len(b))
	for key, postingsA := range a {
		postingsB, ok := b[key]
		require.True(t, ok)
		require.ElementsMatch(t, postingsA, postingsB)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		idx := randomIndex(rt)
		path := filepath.Join(rt.TempDir(), "index.bin")

		require.NoError(rt, Save(idx, path))
		loaded, err := Load(path)
		require.NoError(rt, err)
		assertIndexEqual(rt, idx, loaded)
	})
}

func TestLoad_MissingFileReturnsErrLoadNoIndex(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bin"))
	assert.ErrorIs(t, err, ErrLoadNoIndex)
}

func TestMerge_IdentityWithEmpty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := randomIndex(rt)
		before := len(a)
		Merge(a, New())
		assert.Equal(rt, before, len(a))
	})
}

func TestMerge_Associative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a, b, c := randomIndex(rt), randomIndex(rt), randomIndex(rt)

		left := cloneIndex(a)
		Merge(left, b)
		Merge(left, c)

		bc := cloneIndex(b)
		Merge(bc, c)
		right := cloneIndex(a)
		Merge(right, bc)

		assertIndexEqual(rt, left, right)
	})
}

func cloneIndex(idx Index) Index {
	out := New()
	for k, v := range idx {
		cp := make([]models.Posting, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
