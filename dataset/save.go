// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dandrid/sedias/sound"
	"github.com/emer/etable/etable"
	"github.com/pkg/errors"
)

// AudioDir is the subdirectory of a saved dataset holding the waveforms
const AudioDir = "audio"

// TableFile returns the file name of the saved table of a corpus
func TableFile(name string) string { return name + ".tsv" }

// AudioFile returns the file name of the saved waveform of row i, relative to the
// dataset directory
func AudioFile(name string, i int) string {
	return filepath.Join(AudioDir, fmt.Sprintf("%s_%06d.wav", name, i))
}

// Save writes the table to dir/<name>.tsv and the waveform of row i to
// dir/audio/<name>_<i>.wav, encoded at bitDepth
func (ds *Dataset) Save(dir string, bitDepth int) error {
	if err := sound.CheckBitDepth(bitDepth); err != nil {
		return errors.Wrap(err, "dataset: save")
	}
	if err := os.MkdirAll(filepath.Join(dir, AudioDir), 0755); err != nil {
		return errors.Wrap(err, "dataset: create output dir")
	}
	tfn := filepath.Join(dir, TableFile(ds.Name))
	f, err := os.Create(tfn)
	if err != nil {
		return errors.Wrap(err, "dataset: create table file")
	}
	err = ds.Table.WriteCSV(f, etable.Tab, true)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "dataset: write %s", tfn)
	}
	for i, w := range ds.Audio {
		fn := filepath.Join(dir, AudioFile(ds.Name, i))
		if err := sound.WriteWaveform(fn, w, bitDepth); err != nil {
			return errors.Wrapf(err, "dataset: write row %d", i)
		}
	}
	return nil
}

// Clipped returns the number of rows holding samples outside -1..1, which Save clips
func (ds *Dataset) Clipped() int {
	n := 0
	for _, w := range ds.Audio {
		if w != nil && w.Clipped() > 0 {
			n++
		}
	}
	return n
}
