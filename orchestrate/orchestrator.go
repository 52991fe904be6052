// Package orchestrate walks files or directories, runs the Decoder →
// Spectrogram → Peaks → Hash pipeline on each in a worker pool, and merges
// partial results into one Index. It is the only package that wires the DSP
// core, the Index Store and the Matcher together.
package orchestrate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"fprint/core"
	"fprint/fileformat"
	"fprint/index"
	"fprint/match"
	"fprint/models"
	"fprint/utils"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyCorpus is returned by CreateIndex when no hashes were produced
// from any input file.
var ErrEmptyCorpus = errors.New("orchestrate: no hashes produced from input")

// ErrNoIndex is returned by Query when idx is nil.
var ErrNoIndex = errors.New("orchestrate: no index available for query")

// Orchestrator runs the fingerprinting pipeline across single files or
// whole directories.
type Orchestrator struct {
	// Workers bounds how many files are fingerprinted concurrently.
	// Zero means GOMAXPROCS.
	Workers int
}

// New returns an Orchestrator with workers concurrent pipeline slots. A
// non-positive value falls back to the host's core count.
func New(workers int) *Orchestrator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Orchestrator{Workers: workers}
}

// CreateIndex builds a fresh Index from path. If path is a file it is
// fingerprinted alone; if it is a directory, its files are enumerated
// (recursive controls descent) and fingerprinted, optionally in parallel,
// then merged into one Index. Files that fail to decode are skipped with a
// logged warning.
func (o *Orchestrator) CreateIndex(ctx context.Context, path string, recursive, parallel bool) (index.Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var files []string
	if info.IsDir() {
		files, err = enumerate(path, recursive)
		if err != nil {
			return nil, err
		}
	} else {
		files = []string{path}
	}

	idx, err := o.fingerprintAll(ctx, files, parallel)
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, ErrEmptyCorpus
	}
	return idx, nil
}

// UpdateIndex builds a sub-index from target (a directory, or an explicit
// list of file paths) and merges it into idx in place.
func (o *Orchestrator) UpdateIndex(ctx context.Context, idx index.Index, target []string, recursive, parallel bool) error {
	var files []string
	for _, t := range target {
		info, err := os.Stat(t)
		if err != nil {
			return err
		}
		if info.IsDir() {
			sub, err := enumerate(t, recursive)
			if err != nil {
				return err
			}
			files = append(files, sub...)
		} else {
			files = append(files, t)
		}
	}

	sub, err := o.fingerprintAll(ctx, files, parallel)
	if err != nil {
		return err
	}
	index.Merge(idx, sub)
	return nil
}

// Query decodes samplePath, fingerprints it into a transient hash set, and
// ranks idx's tracks against it with the Matcher.
func (o *Orchestrator) Query(idx index.Index, samplePath string) ([]string, error) {
	if idx == nil {
		return nil, ErrNoIndex
	}
	hashes, err := fingerprintFile(samplePath, samplePath)
	if err != nil {
		return nil, err
	}
	return match.Match(hashes, idx), nil
}

// fingerprintAll runs the pipeline over every file, skipping decode
// failures, and merges the results sequentially. When parallel is true the
// per-file pipelines run in a bounded worker pool; the merge itself is
// always sequential — the Index is never concurrently mutated.
func (o *Orchestrator) fingerprintAll(ctx context.Context, files []string, parallel bool) (index.Index, error) {
	logger := utils.GetLogger()
	idx := index.New()

	workers := 1
	if parallel {
		workers = o.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
	}

	type result struct {
		path   string
		hashes map[models.HashKey][]models.Posting
		err    error
	}
	results := make([]result, len(files))

	bar := progressbar.Default(int64(len(files)), "fingerprinting")
	defer bar.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			hashes, err := fingerprintFile(path, path)
			results[i] = result{path: path, hashes: hashes, err: err}
			_ = bar.Add(1)
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
				return nil
			}
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}

	for _, r := range results {
		if r.err != nil {
			logger.Warn("skipping file that failed to decode",
				"path", r.path, "error", utils.Wrap(r.err, "fingerprint pipeline"))
			continue
		}
		index.Merge(idx, r.hashes)
	}
	return idx, nil
}

// fingerprintFile runs Decoder → Spectrogram → Peaks → Hash on one file.
func fingerprintFile(path, trackID string) (map[models.HashKey][]models.Posting, error) {
	pcm, err := fileformat.Decode(path)
	if err != nil {
		return nil, err
	}
	matrix, err := core.Spectrogram(pcm, fileformat.TargetSampleRate)
	if err != nil {
		return nil, err
	}
	constellation := core.ExtractPeaks(matrix)
	return core.Hash(trackID, constellation), nil
}

// enumerate lists the files under dir. When recursive is false only dir's
// immediate children are returned.
func enumerate(dir string, recursive bool) ([]string, error) {
	var files []string
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
