// Copyright 2026 The Wordbeam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decoder

import "fmt"

// Mode selects how the language model rescores hypotheses.
type Mode int

const (
	// Words constrains the output to dictionary words without
	// language-model rescoring.
	Words Mode = iota

	// NGrams multiplies the text probability of a hypothesis by the
	// bigram probability of every completed word.
	NGrams

	// NGramsForecast additionally scores open word prefixes with the
	// summed probability of their possible completions, so that short
	// hypotheses are not unfairly dominated by completed-word
	// hypotheses.
	NGramsForecast

	// NGramsForecastAndSample behaves like NGramsForecast, but bounds
	// the cost of the completion sum by sampling a fixed number of
	// completions.
	NGramsForecastAndSample
)

var modeNames = map[Mode]string{
	Words:                   "Words",
	NGrams:                  "NGrams",
	NGramsForecast:          "NGramsForecast",
	NGramsForecastAndSample: "NGramsForecastAndSample",
}

// ParseMode parses a mode name. The recognized names are "Words",
// "NGrams", "NGramsForecast", and "NGramsForecastAndSample".
func ParseMode(name string) (Mode, error) {
	for mode, modeName := range modeNames {
		if name == modeName {
			return mode, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

// String returns the name of the mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) valid() bool {
	_, ok := modeNames[m]
	return ok
}

// useNGrams reports whether completed words are rescored with the
// language model.
func (m Mode) useNGrams() bool {
	return m != Words
}

// useForecast reports whether open word prefixes are scored with their
// completion mass.
func (m Mode) useForecast() bool {
	return m == NGramsForecast || m == NGramsForecastAndSample
}
