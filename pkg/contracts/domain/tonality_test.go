package domain

import (
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchClass(t *testing.T) {
	tests := []struct {
		pc    PitchClass
		valid bool
		name  string
	}{
		{pc: 0, valid: true, name: "C"},
		{pc: 1, valid: true, name: "C#"},
		{pc: 11, valid: true, name: "B"},
		{pc: 12, valid: false, name: "PitchClass(12)"},
		{pc: -1, valid: false, name: "PitchClass(-1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.pc.Valid())
			assert.Equal(t, tt.name, tt.pc.String())
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "major", want: Major},
		{input: " Minor ", want: Minor},
		{input: "MAJ", want: Major},
		{input: "min", want: Minor},
		{input: "dorian", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode(t *testing.T) {
	assert.Equal(t, "major", Major.String())
	assert.Equal(t, "minor", Minor.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
	assert.False(t, Mode(7).Valid())
	assert.Equal(t, []Mode{Major, Minor}, Modes)
}

func TestProfile(t *testing.T) {
	p := Profile{Tonic: 6, Mode: Minor}
	p.Values[0] = 1.5

	assert.Equal(t, "F# minor", p.Label())

	s := p.Slice()
	require.Len(t, s, PitchClassCount)
	s[0] = 99
	assert.Equal(t, 1.5, p.Values[0], "Slice must copy")
}

func TestBinaryScaleVector(t *testing.T) {
	b := BinaryScaleVector{Name: "whole-tone", Values: [PitchClassCount]float64{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0}}

	assert.Equal(t, 6, b.Size())
	s := b.Slice()
	s[1] = 1
	assert.Equal(t, 0.0, b.Values[1])
}

func TestTrialRecord(t *testing.T) {
	r := TrialRecord{ExpNo: "1", Context: "c.wav", Probe: "p.wav", Rating: math.NaN(), Participant: "p01"}
	assert.Equal(t, TrialKey{ExpNo: "1", Context: "c.wav", Probe: "p.wav"}, r.Key())

	v := validator.New()
	assert.NoError(t, v.Struct(r))

	r.Participant = ""
	assert.Error(t, v.Struct(r))
}

func TestCondition_Validation(t *testing.T) {
	v := validator.New()
	assert.NoError(t, v.Struct(Condition{Experiment: "exp1", Context: "a.wav", Target: "x.wav"}))
	assert.Error(t, v.Struct(Condition{Experiment: "exp1", Context: "a.wav"}))
}
