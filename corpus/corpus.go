// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpus holds the labeling dimensions of the supported speech-emotion
// corpora and the filename grammar that maps a combination of dimension
// values onto the recording expected on disk.
package corpus

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownCorpus = errors.New("corpus: unknown corpus")

// Value is one (display label, code) pair of a labeling dimension
type Value struct {
	Label string `desc:"display label, e.g. happy"`
	Code  string `desc:"code used in the file name, e.g. 03"`
}

// Actor is a speaker of the corpus, the gender is derived from the actor table
type Actor struct {
	Code   string
	Gender string
}

// Dim identifies a labeling dimension
type Dim int

const (
	Emotion Dim = iota
	Intensity
	Statement
	Repetition
	ActorDim
)

func (d Dim) String() string {
	switch d {
	case Emotion:
		return "emotion"
	case Intensity:
		return "emotion_intensity"
	case Statement:
		return "statement"
	case Repetition:
		return "repetition"
	case ActorDim:
		return "actor"
	}
	return "unknown"
}

// Key is one concrete combination of dimension values, i.e. one theoretically
// expected recording
type Key struct {
	Emotion    Value
	Intensity  Value
	Statement  Value
	Repetition Value
	Actor      Actor
}

// Descriptor describes a corpus: its dimensions, the order they are traversed in,
// the filename grammar and what happens to a sample after it is loaded
type Descriptor struct {
	Name        string  `desc:"short name of the corpus"`
	Dir         string  `desc:"directory of the corpus under the data root"`
	Emotions    []Value `desc:"emotion dimension"`
	Intensities []Value `desc:"emotion intensity dimension, empty if the corpus has none"`
	Statements  []Value `desc:"statement dimension"`
	Repetitions []Value `desc:"repetition dimension, label and code are usually the same"`
	Actors      []Actor `desc:"actors with their gender"`
	Order       []Dim   `desc:"traversal order, outermost first"`
	TargetRate  int     `desc:"if > 0 every loaded waveform is resampled to this rate"`
	Augment     bool    `desc:"add noise perturbed copies of every loaded waveform"`

	FileName func(k Key) string `view:"-" desc:"filename grammar, relative to Dir"`
}

// HasIntensity reports whether the corpus labels emotion intensity
func (d *Descriptor) HasIntensity() bool {
	return len(d.Intensities) > 0
}

// Path returns the path of the recording for k, relative to the data root
func (d *Descriptor) Path(k Key) string {
	return filepath.Join(d.Dir, d.FileName(k))
}

func (d *Descriptor) dimLen(dim Dim) int {
	switch dim {
	case Emotion:
		return len(d.Emotions)
	case Intensity:
		return len(d.Intensities)
	case Statement:
		return len(d.Statements)
	case Repetition:
		return len(d.Repetitions)
	case ActorDim:
		return len(d.Actors)
	}
	return 0
}

func (d *Descriptor) set(k *Key, dim Dim, i int) {
	switch dim {
	case Emotion:
		k.Emotion = d.Emotions[i]
	case Intensity:
		k.Intensity = d.Intensities[i]
	case Statement:
		k.Statement = d.Statements[i]
	case Repetition:
		k.Repetition = d.Repetitions[i]
	case ActorDim:
		k.Actor = d.Actors[i]
	}
}

// dims returns the traversal order without the dimensions the corpus does not have
func (d *Descriptor) dims() []Dim {
	dims := make([]Dim, 0, len(d.Order))
	for _, dim := range d.Order {
		if d.dimLen(dim) > 0 {
			dims = append(dims, dim)
		}
	}
	return dims
}

// Size returns the number of keys in the cross product of all dimensions
func (d *Descriptor) Size() int {
	dims := d.dims()
	if len(dims) == 0 {
		return 0
	}
	n := 1
	for _, dim := range dims {
		n *= d.dimLen(dim)
	}
	return n
}

// Keys enumerates every combination of dimension values in traversal order,
// the last dimension of Order varies fastest
func (d *Descriptor) Keys() []Key {
	dims := d.dims()
	n := d.Size()
	keys := make([]Key, 0, n)
	idx := make([]int, len(dims))
	for c := 0; c < n; c++ {
		var k Key
		for i, dim := range dims {
			d.set(&k, dim, idx[i])
		}
		keys = append(keys, k)
		for i := len(dims) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < d.dimLen(dims[i]) {
				break
			}
			idx[i] = 0
		}
	}
	return keys
}

// Resolve joins the data root and the corpus path of k and reports whether a
// regular file exists there
func Resolve(root string, d *Descriptor, k Key) (string, bool) {
	fn := filepath.Join(root, d.Path(k))
	fi, err := os.Stat(fn)
	if err != nil || fi.IsDir() {
		return fn, false
	}
	return fn, true
}

// All returns fresh descriptors of every supported corpus
func All() []*Descriptor {
	return []*Descriptor{RAVDESS(), EmoDB()}
}

// Lookup returns the descriptor of the named corpus
func Lookup(name string) (*Descriptor, error) {
	for _, d := range All() {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownCorpus, "%q", name)
}
