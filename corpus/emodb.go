// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package corpus

// Berlin Database of Emotional Speech. File names concatenate the codes
// without separator, e.g. 03a01Nc.wav
const EmoDBRate = 48000

var EmoDBActors = []Actor{
	{"03", "male"},
	{"08", "female"},
	{"09", "female"},
	{"10", "male"},
	{"11", "male"},
	{"12", "male"},
	{"13", "female"},
	{"14", "female"},
	{"15", "male"},
	{"16", "female"},
}

var EmoDBStatements = []Value{
	{"Der_Lappen_liegt_auf_dem_Eisschrank.", "a01"},
	{"Das_will_sie_am_Mittwoch_abgeben.", "a02"},
	{"Heute_abend_könnte_ich_es_ihm_sagen.", "a04"},
	{"Das_schwarze_Stück_Papier_befindet_sich_da_oben_neben_dem_Holzstück.", "a05"},
	{"In_sieben_Stunden_wird_es_soweit_sein.", "a07"},
	{"Was_sind_denn_das_für_Tüten,_die_da_unter_dem_Tisch_stehen?", "b01"},
	{"Sie_haben_es_gerade_hochgetragen_und_jetzt_gehen_sie_wieder_runter.", "b02"},
	{"An_den_Wochenenden_bin_ich_jetzt_immer_nach_Hause_gefahren_und_habe_Agnes_besucht.", "b03"},
	{"Ich_will_das_eben_wegbringen_und_dann_mit_Karl_was_trinken_gehen.", "b09"},
	{"Die_wird_auf_dem_Platz_sein,_wo_wir_sie_immer_hinlegen.", "b10"},
}

var EmoDBEmotions = []Value{
	{"neutral", "N"},
	{"anger", "W"},        // Wut
	{"boredom", "L"},      // Langeweile
	{"disgust", "E"},      // Ekel
	{"anxiety/fear", "A"}, // Angst
	{"happiness", "F"},    // Freude
	{"sadness", "T"},      // Trauer
}

var EmoDBRepetitions = []Value{
	{"a", "a"}, {"b", "b"}, {"c", "c"}, {"d", "d"}, {"e", "e"}, {"f", "f"},
}

// EmoDB returns the descriptor of the german corpus. Samples are resampled
// to EmoDBRate and not augmented.
func EmoDB() *Descriptor {
	return &Descriptor{
		Name:        "emodb",
		Dir:         "emodb",
		Emotions:    EmoDBEmotions,
		Statements:  EmoDBStatements,
		Repetitions: EmoDBRepetitions,
		Actors:      EmoDBActors,
		Order:       []Dim{ActorDim, Statement, Emotion, Repetition},
		TargetRate:  EmoDBRate,
		FileName:    emodbFileName,
	}
}

func emodbFileName(k Key) string {
	return "wav/" + k.Actor.Code + k.Statement.Code + k.Emotion.Code + k.Repetition.Code + ".wav"
}
