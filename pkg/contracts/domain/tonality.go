package domain

import (
	"fmt"
	"strings"
)

// PitchClassCount is the number of pitch classes in an octave
const PitchClassCount = 12

// PitchClass is a semitone position within the octave, 0 (C) through 11 (B)
type PitchClass int

// PitchClassNames maps pitch classes to their sharp-spelled names
var PitchClassNames = [PitchClassCount]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// Valid reports whether the pitch class is in [0,11]
func (p PitchClass) Valid() bool {
	return p >= 0 && p < PitchClassCount
}

// String returns the sharp-spelled name of the pitch class
func (p PitchClass) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PitchClass(%d)", int(p))
	}
	return PitchClassNames[p]
}

// Mode is the tonal mode of a key profile
type Mode int

const (
	Major Mode = iota
	Minor
)

// Modes lists the modes in enumeration order
var Modes = []Mode{Major, Minor}

// String returns the lower-case mode name
func (m Mode) String() string {
	switch m {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether the mode is major or minor
func (m Mode) Valid() bool {
	return m == Major || m == Minor
}

// ParseMode converts "major"/"minor" (case-insensitive) to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major", "maj":
		return Major, nil
	case "minor", "min":
		return Minor, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Profile is the expected stability rating of each pitch class under a key.
// Values is a rotation of the mode's base vector by Tonic positions.
type Profile struct {
	Tonic  PitchClass
	Mode   Mode
	Values [PitchClassCount]float64
}

// Label returns a human-readable key name such as "F# minor"
func (p Profile) Label() string {
	return p.Tonic.String() + " " + p.Mode.String()
}

// Slice returns a copy of the profile values as a slice
func (p Profile) Slice() []float64 {
	out := make([]float64, PitchClassCount)
	copy(out, p.Values[:])
	return out
}

// BinaryScaleVector flags scale membership per pitch class with 0 or 1
type BinaryScaleVector struct {
	Name   string
	Values [PitchClassCount]float64
}

// Slice returns a copy of the scale flags as a slice
func (b BinaryScaleVector) Slice() []float64 {
	out := make([]float64, PitchClassCount)
	copy(out, b.Values[:])
	return out
}

// Size returns the number of pitch classes in the scale
func (b BinaryScaleVector) Size() int {
	n := 0
	for _, v := range b.Values {
		if v != 0 {
			n++
		}
	}
	return n
}
