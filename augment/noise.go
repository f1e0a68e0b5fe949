// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package augment creates additional training samples by perturbing a waveform
// with gaussian noise sized relative to the waveform's own standard deviation.
package augment

import (
	"math"
	"time"

	"github.com/dandrid/sedias/sound"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Center selects the mean of the injected noise
type Center string

const (
	// CenterSignal draws noise around the waveform mean, so a constant
	// waveform c becomes 2c; only CenterZero leaves constant waveforms unchanged
	CenterSignal Center = "signal"
	// CenterZero draws zero mean noise
	CenterZero Center = "zero"
)

// Noise generates noise perturbed copies of a waveform, one per intensity level.
// Levels are Start, Start+Step, ... up to but excluding Stop.
type Noise struct {
	Start  float64     `def:"0.1" desc:"first noise intensity, a multiplier of the waveform standard deviation"`
	Stop   float64     `def:"0.3" desc:"exclusive upper bound of the noise intensities"`
	Step   float64     `def:"0.1" desc:"increment between intensities"`
	Center Center      `def:"signal" desc:"mean of the noise, the waveform mean (signal) or zero"`
	Src    rand.Source `view:"-" desc:"random source, seeded for reproducible datasets"`
}

// Defaults sets the intensities 0.1 and 0.2 with noise centered on the signal mean
func (ns *Noise) Defaults() {
	ns.Start = 0.1
	ns.Stop = 0.3
	ns.Step = 0.1
	ns.Center = CenterSignal
}

// NewNoise returns default noise params using a source seeded with seed,
// or with the current time if seed is 0
func NewNoise(seed uint64) *Noise {
	ns := &Noise{}
	ns.Defaults()
	ns.Seed(seed)
	return ns
}

// Seed replaces the random source
func (ns *Noise) Seed(seed uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	ns.Src = rand.NewSource(seed)
}

// Levels returns the noise intensities, evenly spaced like numpy arange
func (ns *Noise) Levels() []float64 {
	if ns.Step <= 0 || ns.Stop <= ns.Start {
		return nil
	}
	n := int(math.Ceil((ns.Stop - ns.Start) / ns.Step))
	levels := make([]float64, n)
	for i := range levels {
		levels[i] = ns.Start + float64(i)*ns.Step
	}
	return levels
}

// Apply returns one perturbed copy of w per level, in level order. Each copy has
// the shape and sample rate of w and is w plus gaussian noise with standard deviation
// level * std(w). The mean and std are taken over all samples of all channels.
func (ns *Noise) Apply(w *sound.Waveform) []*sound.Waveform {
	var mean, std float64
	if vals := w.Floats(); len(vals) > 0 {
		mean, std = stat.PopMeanStdDev(vals, nil)
	}
	mu := mean
	if ns.Center == CenterZero {
		mu = 0
	}
	levels := ns.Levels()
	noised := make([]*sound.Waveform, 0, len(levels))
	for _, lvl := range levels {
		dist := distuv.Normal{Mu: mu, Sigma: std * lvl, Src: ns.Src}
		nw := w.Clone()
		for i, v := range nw.Floats() {
			nw.Floats()[i] = v + dist.Rand()
		}
		noised = append(noised, nw)
	}
	return noised
}
