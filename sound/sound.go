// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"math"
	"os"

	"github.com/emer/etable/etensor"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

var (
	ErrDecode   = errors.New("sound: decode failed")
	ErrResample = errors.New("sound: resample failed")
)

const PCM = 1

// 8 bit PCM samples are unsigned, silence is 128
const pcm8Offset = 128

type Wave struct {
	Buf *audio.IntBuffer `inactive:"+"`
}

// Load loads the sound file and decodes it
func (snd *Wave) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return errors.Wrapf(ErrDecode, "open %s: %v", fn, err)
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return errors.Wrapf(ErrDecode, "%s: not a valid wav file", fn)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return errors.Wrapf(ErrDecode, "%s: %v", fn, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate <= 0 {
		return errors.Wrapf(ErrDecode, "%s: bad format", fn)
	}
	snd.Buf = buf
	return nil
}

// WriteWave encodes the signal data and writes it to file using the sample rate and
// other values of the buf object
func (snd *Wave) WriteWave(fn string) error {
	out, err := os.Create(fn)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", fn)
	}

	e := wav.NewEncoder(out, snd.SampleRate(), snd.Buf.SourceBitDepth, snd.Channels(), PCM)
	if err = e.Write(snd.Buf); err != nil {
		out.Close()
		return errors.Wrap(err, "encoding failed on write")
	}

	if err = e.Close(); err != nil {
		out.Close()
		return errors.Wrap(err, "could not close wav file encoder")
	}
	return out.Close()
}

// SampleRate returns the sample rate of the sound or 0 is snd is nil
func (snd *Wave) SampleRate() int {
	if snd == nil || snd.Buf == nil {
		return 0
	}
	return snd.Buf.Format.SampleRate
}

// Channels returns the number of channels in the wav data or 0 is snd is nil
func (snd *Wave) Channels() int {
	if snd == nil || snd.Buf == nil {
		return 0
	}
	return snd.Buf.Format.NumChannels
}

// ToTensor converts sound data to a floating point etensor with normalized -1..1 values.
// A specific channel can be selected (formats samples as a single-dimensional tensor of frames),
// and -1 gets all available channels (formats samples as two-dimensional tensor with outer
// dimension as channels and inner dimension frames). Mono sound is always one-dimensional.
func (snd *Wave) ToTensor(samples *etensor.Float64, channel int) {
	nFrames := snd.Buf.NumFrames()
	nCh := snd.Channels()

	if channel < 0 && nCh > 1 { // multiple channels and we process all of them
		samples.SetShape([]int{nCh, nFrames}, nil, []string{"channel", "frame"})
		idx := 0
		for i := 0; i < nFrames; i++ {
			for c := 0; c < nCh; c, idx = c+1, idx+1 {
				samples.Set([]int{c, i}, snd.floatAt(idx))
			}
		}
		return
	}

	samples.SetShape([]int{nFrames}, nil, []string{"frame"})
	if channel < 0 || channel >= nCh {
		channel = 0
	}
	for i, idx := 0, channel; i < nFrames; i, idx = i+1, idx+nCh {
		samples.Values[i] = snd.floatAt(idx)
	}
}

// FromTensor replaces the buffer with the -1..1 samples of w, quantized to bitDepth
// bits; values outside of -1..1 are clipped
func (snd *Wave) FromTensor(w *Waveform, bitDepth int) {
	nCh, nFrames := w.Channels(), w.Frames()
	data := make([]int, nCh*nFrames)
	scale := maxValue(bitDepth)
	offset := 0
	if bitDepth == 8 {
		offset = pcm8Offset
	}
	for i := 0; i < nFrames; i++ {
		for c := 0; c < nCh; c++ {
			v := w.At(c, i)
			v = math.Max(-1, math.Min(1, v))
			data[i*nCh+c] = int(math.Round(v*scale)) + offset
		}
	}
	snd.Buf = &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nCh, SampleRate: w.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
}

func (snd *Wave) floatAt(idx int) float64 {
	if snd.Buf.SourceBitDepth == 8 {
		return float64(snd.Buf.Data[idx]-pcm8Offset) / pcm8Offset
	}
	scale := maxValue(snd.Buf.SourceBitDepth)
	if scale == 0 {
		return 0
	}
	return float64(snd.Buf.Data[idx]) / scale
}

// CheckBitDepth returns an error unless bitDepth is a PCM depth the encoder supports
func CheckBitDepth(bitDepth int) error {
	if maxValue(bitDepth) == 0 {
		return errors.Errorf("sound: unsupported bit depth %d", bitDepth)
	}
	return nil
}

func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case 32:
		return float64(0x7FFFFFFF)
	case 24:
		return float64(0x7FFFFF)
	case 16:
		return float64(0x7FFF)
	case 8:
		return float64(0x7F)
	}
	return 0
}
