// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package corpus

import "strings"

// Ryerson Audio-Visual Database of Emotional Speech and Song.
// File names are seven hyphen separated codes, e.g. 03-01-03-01-01-01-01.wav
const (
	RavdessSeparator    = "-"
	RavdessAudioOnly    = "03"
	RavdessVoiceChannel = "01"
)

var RavdessEmotions = []Value{
	{"neutral", "01"},
	{"calm", "02"},
	{"happy", "03"},
	{"sad", "04"},
	{"angry", "05"},
	{"fearful", "06"},
	{"disgust", "07"},
	{"surprised", "08"},
}

var RavdessIntensities = []Value{
	{"normal", "01"},
	{"strong", "02"},
}

var RavdessStatements = []Value{
	{"Kids_are_talking_by_the_door", "01"},
	{"Dogs_are_sitting_by_the_door", "02"},
}

var RavdessRepetitions = []Value{
	{"01", "01"},
	{"02", "02"},
}

// RavdessActors - odd numbered actors are male, even numbered female
var RavdessActors = []Actor{
	{"01", "male"}, {"02", "female"}, {"03", "male"}, {"04", "female"},
	{"05", "male"}, {"06", "female"}, {"07", "male"}, {"08", "female"},
	{"09", "male"}, {"10", "female"}, {"11", "male"}, {"12", "female"},
	{"13", "male"}, {"14", "female"}, {"15", "male"}, {"16", "female"},
	{"17", "male"}, {"18", "female"}, {"19", "male"}, {"20", "female"},
	{"21", "male"}, {"22", "female"}, {"23", "male"}, {"24", "female"},
}

// RAVDESS returns the descriptor of the north american english corpus.
// Samples keep their decoded rate and are augmented with noise.
func RAVDESS() *Descriptor {
	return &Descriptor{
		Name:        "ravdess",
		Dir:         "RAVDESS",
		Emotions:    RavdessEmotions,
		Intensities: RavdessIntensities,
		Statements:  RavdessStatements,
		Repetitions: RavdessRepetitions,
		Actors:      RavdessActors,
		Order:       []Dim{Emotion, Intensity, Statement, Repetition, ActorDim},
		Augment:     true,
		FileName:    ravdessFileName,
	}
}

func ravdessFileName(k Key) string {
	name := strings.Join([]string{
		RavdessAudioOnly,
		RavdessVoiceChannel,
		k.Emotion.Code,
		k.Intensity.Code,
		k.Statement.Code,
		k.Repetition.Code,
		k.Actor.Code}, RavdessSeparator)
	return "Actor_" + k.Actor.Code + "/" + name + ".wav"
}
