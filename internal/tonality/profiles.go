package tonality

import (
	"fmt"

	apperrors "keyprep/internal/errors"
	"keyprep/pkg/contracts/domain"
)

// Krumhansl-Kessler probe-tone profiles, unrotated. Read through BaseVector.
var kkMajor = [domain.PitchClassCount]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}

var kkMinor = [domain.PitchClassCount]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}

// Binary scale vectors rooted on C. Read through ScaleVectors.
var (
	diatonic  = domain.BinaryScaleVector{Name: "diatonic", Values: [domain.PitchClassCount]float64{1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 0, 1}}
	octatonic = domain.BinaryScaleVector{Name: "octatonic", Values: [domain.PitchClassCount]float64{1, 1, 0, 1, 1, 0, 1, 1, 0, 1, 1, 0}}
	hexatonic = domain.BinaryScaleVector{Name: "hexatonic", Values: [domain.PitchClassCount]float64{1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0}}
	chromatic = domain.BinaryScaleVector{Name: "chromatic", Values: [domain.PitchClassCount]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}}
)

// BaseVector returns the canonical C-rooted profile for a mode
func BaseVector(mode domain.Mode) ([domain.PitchClassCount]float64, error) {
	switch mode {
	case domain.Major:
		return kkMajor, nil
	case domain.Minor:
		return kkMinor, nil
	default:
		return [domain.PitchClassCount]float64{}, apperrors.NewInvalidArgumentError("mode", int(mode), "mode must be major or minor")
	}
}

// BuildProfile rotates the mode's base vector left by tonic positions
func BuildProfile(tonic int, mode domain.Mode) (domain.Profile, error) {
	if !domain.PitchClass(tonic).Valid() {
		return domain.Profile{}, apperrors.NewInvalidArgumentError("tonic", tonic,
			fmt.Sprintf("tonic must be in [0,%d]", domain.PitchClassCount-1))
	}
	base, err := BaseVector(mode)
	if err != nil {
		return domain.Profile{}, err
	}

	p := domain.Profile{Tonic: domain.PitchClass(tonic), Mode: mode}
	for i := range p.Values {
		p.Values[i] = base[(i+tonic)%domain.PitchClassCount]
	}
	return p, nil
}

// AllProfiles returns the 24 key profiles ordered by tonic, major before minor
func AllProfiles() []domain.Profile {
	out := make([]domain.Profile, 0, domain.PitchClassCount*len(domain.Modes))
	for tonic := 0; tonic < domain.PitchClassCount; tonic++ {
		for _, mode := range domain.Modes {
			p, err := BuildProfile(tonic, mode)
			if err != nil {
				// unreachable: tonic and mode come from the valid ranges above
				panic(err)
			}
			out = append(out, p)
		}
	}
	return out
}

// ScaleVectors returns copies of the reference scale vectors in a fixed order
func ScaleVectors() []domain.BinaryScaleVector {
	return []domain.BinaryScaleVector{diatonic, octatonic, hexatonic, chromatic}
}

// ScaleVector looks up a reference scale vector by name
func ScaleVector(name string) (domain.BinaryScaleVector, error) {
	for _, s := range ScaleVectors() {
		if s.Name == name {
			return s, nil
		}
	}
	return domain.BinaryScaleVector{}, apperrors.NewInvalidArgumentError("scale", name, "unknown scale vector")
}

// Labels returns the display labels of the profiles in order
func Labels(profiles []domain.Profile) []string {
	labels := make([]string, len(profiles))
	for i, p := range profiles {
		labels[i] = p.Label()
	}
	return labels
}
