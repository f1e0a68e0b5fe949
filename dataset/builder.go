// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset walks the labeling dimensions of a corpus, loads the recordings
// that exist on disk and assembles them into a labeled table.
package dataset

import (
	"fmt"

	"github.com/dandrid/sedias/augment"
	"github.com/dandrid/sedias/corpus"
	"github.com/dandrid/sedias/logger"
	"github.com/dandrid/sedias/sound"
)

// Row is one fully resolved sample, either an original recording or a noise
// perturbed copy of it
type Row struct {
	Key        corpus.Key
	SampleRate int
	Audio      *sound.Waveform
	Source     string  `desc:"file the audio was loaded from"`
	Level      float64 `desc:"noise intensity, 0 for the original recording"`
}

// SampleError records a recording that exists but could not be loaded
type SampleError struct {
	Path string
	Key  corpus.Key
	Err  error
}

func (e *SampleError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *SampleError) Unwrap() error { return e.Err }

// Accumulator collects rows in the order they are appended
type Accumulator struct {
	rows []Row
}

// Append adds rows at the end
func (ac *Accumulator) Append(rows ...Row) {
	ac.rows = append(ac.rows, rows...)
}

// Rows returns the accumulated rows
func (ac *Accumulator) Rows() []Row { return ac.rows }

// Len returns the number of accumulated rows
func (ac *Accumulator) Len() int { return len(ac.rows) }

// Result is the outcome of one traversal of a corpus
type Result struct {
	Corpus  *corpus.Descriptor
	Rows    []Row
	Errors  []*SampleError
	Checked int `desc:"number of keys visited"`
	Found   int `desc:"number of keys whose file existed"`
}

// Builder drives the traversal of a corpus
type Builder struct {
	Root     string         `desc:"data root containing the corpus directories"`
	Noise    *augment.Noise `desc:"noise augmentation for corpora that ask for it"`
	Log      *logger.Logger `view:"-"`
	Progress func()         `view:"-" desc:"called once per visited key, may be nil"`
}

// NewBuilder returns a builder reading from root. A nil noise gets the defaults
// with an unseeded source, a nil log discards messages.
func NewBuilder(root string, noise *augment.Noise, log *logger.Logger) *Builder {
	if noise == nil {
		noise = augment.NewNoise(0)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Builder{Root: root, Noise: noise, Log: log}
}

// Build visits every key of d in traversal order. Keys without a file are skipped
// silently, files that fail to load or resample are logged, recorded in
// Result.Errors and skipped; the traversal always runs to the end.
func (b *Builder) Build(d *corpus.Descriptor) *Result {
	if d.Augment {
		b.Log.Info().Str("corpus", d.Name).Msg("loading audio files and enriching them")
	} else {
		b.Log.Info().Str("corpus", d.Name).Msg("loading audio files and converting them")
	}
	res := &Result{Corpus: d}
	var acc Accumulator
	for _, k := range d.Keys() {
		res.Checked++
		b.visit(d, k, &acc, res)
		if b.Progress != nil {
			b.Progress()
		}
	}
	res.Rows = acc.Rows()
	b.Log.Info().Str("corpus", d.Name).
		Int("checked", res.Checked).
		Int("found", res.Found).
		Int("errors", len(res.Errors)).
		Msgf("number of samples: %d", len(res.Rows))
	return res
}

func (b *Builder) visit(d *corpus.Descriptor, k corpus.Key, acc *Accumulator, res *Result) {
	fn, ok := corpus.Resolve(b.Root, d, k)
	if !ok {
		return
	}
	res.Found++
	w, err := b.load(d, fn)
	if err != nil {
		b.Log.Warn().Str("path", fn).Err(err).Msg("skipping sample")
		res.Errors = append(res.Errors, &SampleError{Path: fn, Key: k, Err: err})
		return
	}
	acc.Append(Row{Key: k, SampleRate: w.SampleRate, Audio: w, Source: fn})
	if !d.Augment {
		return
	}
	levels := b.Noise.Levels()
	for i, nw := range b.Noise.Apply(w) {
		acc.Append(Row{Key: k, SampleRate: nw.SampleRate, Audio: nw, Source: fn, Level: levels[i]})
	}
}

// load decodes fn and applies the corpus rate conversion
func (b *Builder) load(d *corpus.Descriptor, fn string) (*sound.Waveform, error) {
	w, err := sound.LoadWaveform(fn)
	if err != nil {
		return nil, err
	}
	b.Log.Debug().Str("path", fn).Int("rate", w.SampleRate).Int("frames", w.Frames()).Msg("loaded")
	if d.TargetRate <= 0 {
		return w, nil
	}
	rw, err := sound.Resample(w, d.TargetRate)
	if err != nil {
		return nil, err
	}
	rw.SampleRate = d.TargetRate
	return rw, nil
}
