// Package index is an in-memory inverted mapping from hash key to posting
// list, with atomic gob persistence to a single local file and a
// pinned-parameter header so a stale index is never silently queried under
// the wrong DSP pipeline.
package index

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"

	"fprint/core"
	"fprint/models"
	"fprint/utils"
)

// CurrentVersion is bumped whenever the DSP pipeline or on-disk container
// changes shape in a way that invalidates existing index files.
const CurrentVersion = 1

// DefaultPath is the conventional index filename. Save and Load always take
// an explicit path and do not fall back to it.
const DefaultPath = "index.pkl"

// ErrLoadNoIndex is returned by Load when path does not exist. Callers
// should treat it as "no index yet" rather than a hard failure.
var ErrLoadNoIndex = errors.New("index: no index file at path")

// ErrHeaderMismatch is returned by Load when the file's pinned DSP
// parameters do not match CurrentHeader.
var ErrHeaderMismatch = errors.New("index: index file was built with different DSP parameters")

// Index is the inverted hash table: hash key to posting list.
type Index map[models.HashKey][]models.Posting

// New returns an empty Index.
func New() Index {
	return make(Index)
}

// Merge inserts every posting of batch into index, appending to existing
// posting lists without deduplication.
func Merge(idx Index, batch Index) {
	for key, postings := range batch {
		idx[key] = append(idx[key], postings...)
	}
}

// CurrentHeader describes the DSP parameters this build of the engine
// fingerprints with. It is written into every saved index and checked on
// load.
func CurrentHeader() models.Header {
	return models.Header{
		Version:          CurrentVersion,
		SampleRate:       22050,
		MelBands:         core.MelBands,
		FMaxHz:           core.FMaxHz,
		WindowSize:       core.WindowSize,
		HopSize:          core.HopSize,
		PeakNeighborhood: core.PeakNeighborhood,
		TargetZoneSpan:   core.TargetZoneSpan,
		HistogramBinSize: 150,
	}
}

type container struct {
	Header   models.Header
	Entries  []entry
}

type entry struct {
	Key      models.HashKey
	Postings []models.Posting
}

// Save writes idx to path atomically: gob-encode into a temp sibling file,
// then rename over path. Readers never observe a partial write.
func Save(idx Index, path string) error {
	c := container{Header: CurrentHeader(), Entries: make([]entry, 0, len(idx))}
	for key, postings := range idx {
		c.Entries = append(c.Entries, entry{Key: key, Postings: postings})
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("index: encode: %w", err)
	}

	if err := utils.AtomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("index: save %s: %w", path, err)
	}
	return nil
}

// Load reads an Index previously written by Save. ErrLoadNoIndex is
// returned if path does not exist; ErrHeaderMismatch if the file was built
// under different DSP parameters.
func Load(path string) (Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrLoadNoIndex
		}
		return nil, fmt.Errorf("index: load %s: %w", path, err)
	}

	var c container
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
		return nil, fmt.Errorf("index: decode %s: %w", path, err)
	}

	if c.Header != CurrentHeader() {
		return nil, ErrHeaderMismatch
	}

	idx := make(Index, len(c.Entries))
	for _, e := range c.Entries {
		idx[e.Key] = e.Postings
	}
	return idx, nil
}
