// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dandrid/sedias/sound"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// Column names of the assembled table
const (
	EmotionCol    = "emotion"
	IntensityCol  = "emotion_intensity"
	StatementCol  = "statement"
	RepetitionCol = "repetition"
	ActorCol      = "actor"
	GenderCol     = "actor_gender"
	RateCol       = "samplerate"
	AudioCol      = "audio_data"
)

// Dataset is the assembled table. Table holds the label columns, one row per
// sample; the waveforms have no fixed cell shape and are kept in Audio, in row order.
type Dataset struct {
	Name        string        `desc:"corpus name"`
	Table       *etable.Table `view:"no-inline"`
	Audio       []*sound.Waveform
	Categorical []string `desc:"label columns still holding category values, empty once one-hot encoded"`
}

// LabelColumns returns the categorical columns in table order
func LabelColumns(withIntensity bool) []string {
	if withIntensity {
		return []string{EmotionCol, IntensityCol, StatementCol, RepetitionCol, ActorCol, GenderCol, RateCol}
	}
	return []string{EmotionCol, StatementCol, RepetitionCol, ActorCol, GenderCol, RateCol}
}

func labels(r *Row) map[string]string {
	return map[string]string{
		EmotionCol:    r.Key.Emotion.Label,
		IntensityCol:  r.Key.Intensity.Label,
		StatementCol:  r.Key.Statement.Label,
		RepetitionCol: r.Key.Repetition.Label,
		ActorCol:      r.Key.Actor.Code,
		GenderCol:     r.Key.Actor.Gender,
		RateCol:       strconv.Itoa(r.SampleRate),
	}
}

// Assemble builds the categorical table of rows, keeping row order
func Assemble(name string, rows []Row, withIntensity bool) *Dataset {
	cols := LabelColumns(withIntensity)
	sch := etable.Schema{}
	for _, c := range cols {
		sch = append(sch, etable.Column{Name: c, Type: etensor.STRING})
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", name)
	dt.SetMetaData("desc", "labeled samples, waveforms in "+AudioCol)
	dt.SetFromSchema(sch, len(rows))
	ds := &Dataset{Name: name, Table: dt, Audio: make([]*sound.Waveform, len(rows)), Categorical: cols}
	for i := range rows {
		lb := labels(&rows[i])
		for _, c := range cols {
			dt.SetCellString(c, i, lb[c])
		}
		ds.Audio[i] = rows[i].Audio
	}
	return ds
}

// FromResult assembles the rows of a traversal
func FromResult(res *Result) *Dataset {
	return Assemble(res.Corpus.Name, res.Rows, res.Corpus.HasIntensity())
}

// Rows returns the number of samples
func (ds *Dataset) Rows() int { return ds.Table.Rows }

// Columns returns the table column names, the audio column is not included
func (ds *Dataset) Columns() []string { return ds.Table.ColNames }

// Waveform returns the audio of row i
func (ds *Dataset) Waveform(i int) *sound.Waveform { return ds.Audio[i] }

// Cell returns the value of column col at row i as a string
func (ds *Dataset) Cell(col string, i int) string { return ds.Table.CellString(col, i) }

// Categories returns the distinct values of a categorical column, sorted
// numerically when all of them are integers, lexically otherwise
func (ds *Dataset) Categories(col string) []string {
	if ds.Table.ColByName(col) == nil {
		return nil
	}
	seen := map[string]bool{}
	var cats []string
	for i := 0; i < ds.Table.Rows; i++ {
		v := ds.Table.CellString(col, i)
		if !seen[v] {
			seen[v] = true
			cats = append(cats, v)
		}
	}
	sortCategories(cats)
	return cats
}

func sortCategories(cats []string) {
	nums := make(map[string]int, len(cats))
	for _, c := range cats {
		n, err := strconv.Atoi(c)
		if err != nil {
			sort.Strings(cats)
			return
		}
		nums[c] = n
	}
	sort.Slice(cats, func(i, j int) bool { return nums[cats[i]] < nums[cats[j]] })
}

// IndicatorName returns the name of the indicator column of value in col
func IndicatorName(col, value string) string {
	return col + "_" + value
}

// OneHot returns a dataset in which every categorical column is replaced by one
// indicator column per observed value, set to 1 in the rows holding that value.
// The audio is shared with ds.
func (ds *Dataset) OneHot() *Dataset {
	type indicator struct {
		col, value, name string
	}
	var inds []indicator
	sch := etable.Schema{}
	for _, col := range ds.Table.ColNames {
		if !ds.isCategorical(col) {
			sch = append(sch, etable.Column{Name: col, Type: etensor.STRING})
			continue
		}
		for _, v := range ds.Categories(col) {
			nm := IndicatorName(col, v)
			inds = append(inds, indicator{col: col, value: v, name: nm})
			sch = append(sch, etable.Column{Name: nm, Type: etensor.INT64})
		}
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", ds.Name)
	dt.SetMetaData("desc", "one-hot encoded labels, waveforms in "+AudioCol)
	dt.SetFromSchema(sch, ds.Table.Rows)
	for i := 0; i < ds.Table.Rows; i++ {
		for _, col := range ds.Table.ColNames {
			if !ds.isCategorical(col) {
				dt.SetCellString(col, i, ds.Table.CellString(col, i))
			}
		}
		for _, ind := range inds {
			if ds.Table.CellString(ind.col, i) == ind.value {
				dt.SetCellFloat(ind.name, i, 1)
			}
		}
	}
	return &Dataset{Name: ds.Name, Table: dt, Audio: ds.Audio}
}

func (ds *Dataset) isCategorical(col string) bool {
	for _, c := range ds.Categorical {
		if c == col {
			return true
		}
	}
	return false
}

// Head writes the first n rows in a human readable layout
func (ds *Dataset) Head(w io.Writer, n int) error {
	if n > ds.Rows() {
		n = ds.Rows()
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\t%s\n", AudioCol, strings.Join(ds.Columns(), "\t"))
	for i := 0; i < n; i++ {
		vals := make([]string, len(ds.Columns()))
		for ci, c := range ds.Columns() {
			vals[ci] = ds.Cell(c, i)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, audioSummary(ds.Audio[i]), strings.Join(vals, "\t"))
	}
	return tw.Flush()
}

func audioSummary(w *sound.Waveform) string {
	if w == nil || w.Len() == 0 {
		return "[]"
	}
	vals := w.Floats()
	if len(vals) <= 3 {
		return fmt.Sprintf("%.4f", vals)
	}
	return fmt.Sprintf("[%.4f %.4f ... %.4f] (%d)", vals[0], vals[1], vals[len(vals)-1], len(vals))
}
