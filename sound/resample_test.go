// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestResampleSameRate(t *testing.T) {
	w := NewWaveform(48000, sine(48000, 4800, 440, 0.8))
	out, err := Resample(w, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if out.SampleRate != 48000 || out.Frames() != w.Frames() {
		t.Fatalf("got %v frames at %v, want %v at 48000", out.Frames(), out.SampleRate, w.Frames())
	}
	for i, v := range out.Floats() {
		if math.Abs(v-w.Floats()[i]) > 1e-9 {
			t.Fatalf("sample %v changed: %v != %v", i, v, w.Floats()[i])
		}
	}
	out.Floats()[0] = 5
	if w.Floats()[0] == 5 {
		t.Errorf("resample to the same rate must not share memory")
	}
}

func TestResampleLength(t *testing.T) {
	tests := []struct {
		from, to, n, want int
	}{
		{16000, 48000, 1000, 3000},
		{48000, 16000, 1000, 334},
		{22050, 48000, 441, 960},
		{44100, 48000, 1, 2},
	}
	for _, tt := range tests {
		out, err := Resample(NewWaveform(tt.from, make([]float64, tt.n)), tt.to)
		if err != nil {
			t.Fatal(err)
		}
		if out.Frames() != tt.want || out.SampleRate != tt.to {
			t.Errorf("%v -> %v: %v frames at %v, want %v", tt.from, tt.to, out.Frames(), out.SampleRate, tt.want)
		}
	}
}

func TestResampleSignal(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
	}{
		{"up", 16000, 48000},
		{"down", 48000, 16000},
		{"fractional", 44100, 48000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.from / 10
			w := NewWaveform(tt.from, sine(tt.from, n, 440, 0.5))
			out, err := Resample(w, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			want := sine(tt.to, out.Frames(), 440, 0.5)
			// skip the edges where the filter runs off the signal
			edge := out.Frames() / 10
			for i := edge; i < out.Frames()-edge; i++ {
				if d := math.Abs(out.Floats()[i] - want[i]); d > 0.02 {
					t.Fatalf("sample %v: %v, want %v", i, out.Floats()[i], want[i])
				}
			}
		})
	}
}

func TestResampleConstant(t *testing.T) {
	vals := make([]float64, 1600)
	for i := range vals {
		vals[i] = 0.3
	}
	out, err := Resample(NewWaveform(16000, vals), 48000)
	if err != nil {
		t.Fatal(err)
	}
	for i := 300; i < out.Frames()-300; i++ {
		if math.Abs(out.Floats()[i]-0.3) > 0.01 {
			t.Fatalf("sample %v: %v, want 0.3", i, out.Floats()[i])
		}
	}
}

func TestResampleStereo(t *testing.T) {
	w := NewWaveformShape(16000, 2, 800)
	copy(w.Channel(0), sine(16000, 800, 200, 0.5))
	out, err := Resample(w, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if out.Channels() != 2 || out.Frames() != 2400 {
		t.Fatalf("shape %v, want [2 2400]", out.Shape())
	}
	for _, v := range out.Channel(1) {
		if v != 0 {
			t.Fatalf("silent channel picked up signal: %v", v)
		}
	}
}

func TestResampleErrors(t *testing.T) {
	tests := []struct {
		name string
		w    *Waveform
		to   int
	}{
		{"nil", nil, 48000},
		{"bad from", NewWaveform(0, []float64{1}), 48000},
		{"bad to", NewWaveform(16000, []float64{1}), 0},
		{"empty", NewWaveform(16000, []float64{}), 48000},
	}
	for _, tt := range tests {
		if _, err := Resample(tt.w, tt.to); !errors.Is(err, ErrResample) {
			t.Errorf("%v: %v, want ErrResample", tt.name, err)
		}
	}
}

func TestImpulse(t *testing.T) {
	src := NewRateConverter()
	if math.Abs(src.impulse(0)-1) > 1e-6 {
		t.Errorf("impulse(0) = %v, want 1", src.impulse(0))
	}
	for z := 1; z < ZeroCrossings; z++ {
		if v := src.impulse(float64(z)); math.Abs(v) > 1e-4 {
			t.Errorf("impulse(%v) = %v, want 0", z, v)
		}
	}
	if src.impulse(ZeroCrossings) != 0 {
		t.Errorf("impulse beyond the table must be 0")
	}
}
