// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package corpus

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name string
		d    *Descriptor
		k    Key
		want string
	}{
		{
			name: "ravdess",
			d:    RAVDESS(),
			k: Key{
				Emotion:    Value{"happy", "03"},
				Intensity:  Value{"normal", "01"},
				Statement:  Value{"Kids_are_talking_by_the_door", "01"},
				Repetition: Value{"01", "01"},
				Actor:      Actor{"01", "male"},
			},
			want: filepath.Join("RAVDESS", "Actor_01", "03-01-03-01-01-01-01.wav"),
		},
		{
			name: "emodb",
			d:    EmoDB(),
			k: Key{
				Emotion:    Value{"neutral", "N"},
				Statement:  Value{"Der_Lappen_liegt_auf_dem_Eisschrank.", "a01"},
				Repetition: Value{"a", "a"},
				Actor:      Actor{"03", "male"},
			},
			want: filepath.Join("emodb", "wav", "03a01Na.wav"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Path(tt.k); got != tt.want {
				t.Errorf("Path() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeysSize(t *testing.T) {
	tests := []struct {
		d    *Descriptor
		want int
	}{
		{RAVDESS(), 8 * 2 * 2 * 2 * 24},
		{EmoDB(), 10 * 10 * 7 * 6},
	}
	for _, tt := range tests {
		keys := tt.d.Keys()
		if len(keys) != tt.want || tt.d.Size() != tt.want {
			t.Errorf("%s: %v keys, size %v, want %v", tt.d.Name, len(keys), tt.d.Size(), tt.want)
		}
		seen := map[string]bool{}
		for _, k := range keys {
			p := tt.d.Path(k)
			if seen[p] {
				t.Fatalf("%s: duplicate path %v", tt.d.Name, p)
			}
			seen[p] = true
		}
	}
}

func TestKeysOrder(t *testing.T) {
	keys := RAVDESS().Keys()
	// actor varies fastest, emotion slowest
	if keys[0].Actor.Code != "01" || keys[1].Actor.Code != "02" || keys[1].Emotion.Code != "01" {
		t.Errorf("unexpected ravdess order: %+v %+v", keys[0], keys[1])
	}
	if keys[24].Repetition.Code != "02" || keys[24].Actor.Code != "01" {
		t.Errorf("unexpected ravdess key 24: %+v", keys[24])
	}
	last := keys[len(keys)-1]
	if last.Emotion.Label != "surprised" || last.Actor.Code != "24" || last.Intensity.Label != "strong" {
		t.Errorf("unexpected last ravdess key: %+v", last)
	}

	keys = EmoDB().Keys()
	// repetition varies fastest, actor slowest
	if keys[0].Repetition.Code != "a" || keys[1].Repetition.Code != "b" || keys[6].Emotion.Code != "W" {
		t.Errorf("unexpected emodb order: %+v %+v %+v", keys[0], keys[1], keys[6])
	}
	if keys[0].Intensity != (Value{}) {
		t.Errorf("emodb key has an intensity: %+v", keys[0].Intensity)
	}
	if keys[len(keys)-1].Actor.Code != "16" {
		t.Errorf("unexpected last emodb key: %+v", keys[len(keys)-1])
	}

	again := EmoDB().Keys()
	for i := range keys {
		if keys[i] != again[i] {
			t.Fatalf("traversal is not deterministic at %v", i)
		}
	}
}

func TestGender(t *testing.T) {
	for i, a := range RavdessActors {
		want := "male"
		if i%2 == 1 {
			want = "female"
		}
		if a.Gender != want {
			t.Errorf("actor %v: gender %v, want %v", a.Code, a.Gender, want)
		}
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	d := EmoDB()
	k := d.Keys()[0]
	fn, ok := Resolve(root, d, k)
	if ok {
		t.Fatalf("%v should not exist", fn)
	}
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fn, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, ok := Resolve(root, d, k); !ok || got != fn {
		t.Errorf("Resolve() = %v, %v, want %v, true", got, ok, fn)
	}

	// a directory in place of the file does not count
	k2 := d.Keys()[1]
	fn2, _ := Resolve(root, d, k2)
	if err := os.MkdirAll(fn2, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok := Resolve(root, d, k2); ok {
		t.Errorf("directory %v resolved as a file", fn2)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"ravdess", "EmoDB", " emodb "} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}
	if _, err := Lookup("timit"); !errors.Is(err, ErrUnknownCorpus) {
		t.Errorf("Lookup(timit) = %v, want ErrUnknownCorpus", err)
	}
}

func TestGofmt(t *testing.T) {
	fns, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	for _, fn := range fns {
		src, err := os.ReadFile(fn)
		if err != nil {
			t.Fatal(err)
		}
		fmtd, err := format.Source(src)
		if err != nil {
			t.Fatalf("%v: %v", fn, err)
		}
		if !bytes.Equal(src, fmtd) {
			t.Errorf("%v is not gofmt formatted", fn)
		}
	}
}
