// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"github.com/emer/etable/etensor"
)

// Waveform is a decoded signal with its sample rate
type Waveform struct {
	Samples    *etensor.Float64 `view:"no-inline" desc:"normalized samples, [frames] for mono or [channels, frames]"`
	SampleRate int              `desc:"samples per second"`
}

// NewWaveform returns a mono waveform holding vals (not copied)
func NewWaveform(rate int, vals []float64) *Waveform {
	tsr := etensor.NewFloat64([]int{len(vals)}, nil, []string{"frame"})
	tsr.Values = vals
	return &Waveform{Samples: tsr, SampleRate: rate}
}

// NewWaveformShape returns a zeroed waveform of the given channel and frame count
func NewWaveformShape(rate, channels, frames int) *Waveform {
	if channels > 1 {
		return &Waveform{Samples: etensor.NewFloat64([]int{channels, frames}, nil, []string{"channel", "frame"}), SampleRate: rate}
	}
	return &Waveform{Samples: etensor.NewFloat64([]int{frames}, nil, []string{"frame"}), SampleRate: rate}
}

// LoadWaveform decodes the wav file fn, keeping all channels
func LoadWaveform(fn string) (*Waveform, error) {
	var snd Wave
	if err := snd.Load(fn); err != nil {
		return nil, err
	}
	w := &Waveform{Samples: &etensor.Float64{}, SampleRate: snd.SampleRate()}
	snd.ToTensor(w.Samples, -1)
	return w, nil
}

// WriteWaveform encodes w as a PCM wav file of the given bit depth
func WriteWaveform(fn string, w *Waveform, bitDepth int) error {
	if err := CheckBitDepth(bitDepth); err != nil {
		return err
	}
	var snd Wave
	snd.FromTensor(w, bitDepth)
	return snd.WriteWave(fn)
}

// Channels returns 1 for a one-dimensional waveform, the outer dimension otherwise
func (w *Waveform) Channels() int {
	if w.Samples.NumDims() > 1 {
		return w.Samples.Dim(0)
	}
	return 1
}

// Frames returns the number of samples per channel
func (w *Waveform) Frames() int {
	return w.Samples.Dim(w.Samples.NumDims() - 1)
}

// Len returns the total number of samples
func (w *Waveform) Len() int {
	return w.Samples.Len()
}

// Shape returns the tensor shape
func (w *Waveform) Shape() []int {
	return w.Samples.Shapes()
}

// Floats returns the samples in row major order (channel outer)
func (w *Waveform) Floats() []float64 {
	return w.Samples.Values
}

// At returns the sample of channel ch at frame i
func (w *Waveform) At(ch, i int) float64 {
	return w.Samples.Values[ch*w.Frames()+i]
}

// Channel returns the samples of channel ch, sharing memory with w
func (w *Waveform) Channel(ch int) []float64 {
	n := w.Frames()
	return w.Samples.Values[ch*n : (ch+1)*n]
}

// Clipped returns the number of samples outside -1..1, which are clipped when written
func (w *Waveform) Clipped() int {
	n := 0
	for _, v := range w.Samples.Values {
		if v > 1 || v < -1 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy
func (w *Waveform) Clone() *Waveform {
	cp := NewWaveformShape(w.SampleRate, w.Channels(), w.Frames())
	copy(cp.Samples.Values, w.Samples.Values)
	return cp
}
