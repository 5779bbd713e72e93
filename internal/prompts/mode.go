package prompts

import (
	"fmt"
	"strings"
)

// Mode selects which persona and prompt template a submission uses
type Mode int

const (
	WritingAssistant Mode = iota
	Polish
	GrammarCheck
	PunctuationCheck

	numModes
)

var modeKeys = [numModes]string{
	WritingAssistant: "writing",
	Polish:           "polish",
	GrammarCheck:     "grammar",
	PunctuationCheck: "punctuation",
}

// All returns every mode in display order. The first one is the default.
func All() []Mode {
	modes := make([]Mode, 0, numModes)
	for m := Mode(0); m < numModes; m++ {
		modes = append(modes, m)
	}
	return modes
}

// Valid reports whether m is one of the defined modes
func (m Mode) Valid() bool {
	return m >= 0 && m < numModes
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeKeys[m]
}

// Next returns the mode after m, wrapping around
func (m Mode) Next() Mode {
	return (m + 1) % numModes
}

// Prev returns the mode before m, wrapping around
func (m Mode) Prev() Mode {
	return (m + numModes - 1) % numModes
}

// Parse maps a mode key such as "grammar" to its Mode.
// An empty string selects the default mode.
func Parse(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return WritingAssistant, nil
	}
	for m, key := range modeKeys {
		if key == s {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want one of %s)", s, strings.Join(modeKeys[:], ", "))
}
