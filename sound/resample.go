// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// kaiser window params
const Beta = float32(5.658)
const IZeroEpsilon = 1e-21

// Sample rate conversion constants
const ZeroCrossings = 13              // one sided length of the filter in zero crossings
const LpCutoff = float32(11.0 / 13.0) // 0.846 of nyquist
const LRange = 256                    // filter table entries per zero crossing
const FilterLength = ZeroCrossings * LRange
const FilterLimit = FilterLength - 1

// RateConverter is a band limited (windowed sinc) sample rate converter.
// H holds one side of the kaiser windowed impulse response sampled LRange times per
// zero crossing, DeltaH the differences used to interpolate between the table phases.
type RateConverter struct {
	H      [FilterLength]float32
	DeltaH [FilterLength]float32
}

// DefaultConverter is initialized once and shared, the filter tables are read only
var DefaultConverter = NewRateConverter()

// NewRateConverter returns a converter with initialized filter tables
func NewRateConverter() *RateConverter {
	src := &RateConverter{}
	src.InitFilter()
	return src
}

// IZero returns the value for the modified Bessel function of the first kind, order 0, as a float
func IZero(x float32) float32 {
	var sum float32 = 1.0
	var u float32 = 1.0
	var halfx float32 = x / 2.0

	n := 1
	for {
		temp := halfx / float32(n)
		n += 1
		temp *= temp
		u *= temp
		sum += u
		if u < IZeroEpsilon*sum {
			break
		}
	}
	return sum
}

// InitFilter initializes filter impulse response and impulse delta values
func (src *RateConverter) InitFilter() {
	src.H[0] = 1
	for i := 1; i < FilterLength; i++ {
		y := math32.Pi * float32(i) / float32(LRange)
		src.H[i] = math32.Sin(y) / y
	}

	// apply a kaiser window to the impulse response
	iBeta := 1.0 / IZero(Beta)
	for i := 0; i < FilterLength; i++ {
		temp := float32(i) / float32(FilterLength)
		src.H[i] *= IZero(Beta*math32.Sqrt(1.0-(temp*temp))) * iBeta
	}

	for i := 0; i < FilterLimit; i++ {
		src.DeltaH[i] = src.H[i+1] - src.H[i]
	}
	src.DeltaH[FilterLimit] = 0.0 - src.H[FilterLimit]
}

// impulse returns the interpolated impulse response x zero crossings from the center
func (src *RateConverter) impulse(x float64) float64 {
	pos := x * LRange
	k := int(pos)
	if k >= FilterLength {
		return 0
	}
	frac := pos - float64(k)
	return float64(src.H[k]) + frac*float64(src.DeltaH[k])
}

// Convert resamples in by ratio (output rate / input rate) into out.
// The cutoff is lowered to the output nyquist when downsampling.
func (src *RateConverter) Convert(in, out []float64, ratio float64) {
	cutoff := float64(LpCutoff) * math.Min(1, ratio)
	halfWidth := float64(ZeroCrossings) / cutoff // in input samples
	last := len(in) - 1
	for i := range out {
		t := float64(i) / ratio
		lo := int(math.Ceil(t - halfWidth))
		if lo < 0 {
			lo = 0
		}
		hi := int(math.Floor(t + halfWidth))
		if hi > last {
			hi = last
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			x := math.Abs(t-float64(j)) * cutoff
			if x >= ZeroCrossings {
				continue
			}
			sum += in[j] * src.impulse(x)
		}
		out[i] = sum * cutoff
	}
}

// Resample converts w to toRate using the DefaultConverter. The output has
// ceil(frames * toRate / rate) frames per channel and its sample rate is set to toRate.
// Resampling to the current rate returns a copy.
func Resample(w *Waveform, toRate int) (*Waveform, error) {
	if w == nil || w.Samples == nil {
		return nil, errors.Wrap(ErrResample, "nil waveform")
	}
	if w.SampleRate <= 0 || toRate <= 0 {
		return nil, errors.Wrapf(ErrResample, "bad rates %d -> %d", w.SampleRate, toRate)
	}
	if w.Samples.NumDims() > 2 {
		return nil, errors.Wrapf(ErrResample, "unsupported channel layout %v", w.Shape())
	}
	if w.Frames() == 0 {
		return nil, errors.Wrap(ErrResample, "empty waveform")
	}
	if w.SampleRate == toRate {
		return w.Clone(), nil
	}
	ratio := float64(toRate) / float64(w.SampleRate)
	nOut := (w.Frames()*toRate + w.SampleRate - 1) / w.SampleRate
	out := NewWaveformShape(toRate, w.Channels(), nOut)
	for ch := 0; ch < w.Channels(); ch++ {
		DefaultConverter.Convert(w.Channel(ch), out.Channel(ch), ratio)
	}
	return out, nil
}
