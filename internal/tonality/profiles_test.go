package tonality

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "keyprep/internal/errors"
	"keyprep/pkg/contracts/domain"
)

func TestBuildProfile_Rotation(t *testing.T) {
	for _, mode := range domain.Modes {
		base, err := BaseVector(mode)
		require.NoError(t, err)

		for tonic := 0; tonic < domain.PitchClassCount; tonic++ {
			p, err := BuildProfile(tonic, mode)
			require.NoError(t, err)

			assert.Equal(t, domain.PitchClass(tonic), p.Tonic)
			assert.Equal(t, mode, p.Mode)
			for i := 0; i < domain.PitchClassCount; i++ {
				assert.Equal(t, base[(i+tonic)%domain.PitchClassCount], p.Values[i],
					"tonic %d %s index %d", tonic, mode, i)
			}
		}
	}
}

func TestBuildProfile_KnownValues(t *testing.T) {
	tests := []struct {
		name  string
		tonic int
		mode  domain.Mode
		want  [12]float64
	}{
		{
			name:  "C major is unrotated",
			tonic: 0,
			mode:  domain.Major,
			want:  [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88},
		},
		{
			name:  "C# major rotates left by one",
			tonic: 1,
			mode:  domain.Major,
			want:  [12]float64{2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88, 6.35},
		},
		{
			name:  "C minor is unrotated",
			tonic: 0,
			mode:  domain.Minor,
			want:  [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17},
		},
		{
			name:  "B minor rotates left by eleven",
			tonic: 11,
			mode:  domain.Minor,
			want:  [12]float64{3.17, 6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildProfile(tt.tonic, tt.mode)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, p.Values); diff != "" {
				t.Errorf("profile values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildProfile_InvalidArgument(t *testing.T) {
	tests := []struct {
		name  string
		tonic int
		mode  domain.Mode
		arg   string
	}{
		{name: "negative tonic", tonic: -1, mode: domain.Major, arg: "tonic"},
		{name: "tonic twelve", tonic: 12, mode: domain.Minor, arg: "tonic"},
		{name: "unknown mode", tonic: 3, mode: domain.Mode(7), arg: "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildProfile(tt.tonic, tt.mode)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidArgument))

			arg, ok := apperrors.ContextValue(err, "argument")
			require.True(t, ok)
			assert.Equal(t, tt.arg, arg)
		})
	}
}

func TestAllProfiles_Order(t *testing.T) {
	profiles := AllProfiles()
	require.Len(t, profiles, 24)

	for i, p := range profiles {
		assert.Equal(t, domain.PitchClass(i/2), p.Tonic, "index %d", i)
		if i%2 == 0 {
			assert.Equal(t, domain.Major, p.Mode, "index %d", i)
		} else {
			assert.Equal(t, domain.Minor, p.Mode, "index %d", i)
		}
	}

	assert.Equal(t, "C major", profiles[0].Label())
	assert.Equal(t, "C minor", profiles[1].Label())
	assert.Equal(t, "C# major", profiles[2].Label())
	assert.Equal(t, "B minor", profiles[23].Label())
}

func TestAllProfiles_Idempotent(t *testing.T) {
	first := AllProfiles()
	second := AllProfiles()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("AllProfiles not stable (-first +second):\n%s", diff)
	}

	// Callers get independent slices.
	first[0].Values[0] = -1
	assert.Equal(t, 6.35, AllProfiles()[0].Values[0])
	base, err := BaseVector(domain.Major)
	require.NoError(t, err)
	base[0] = -1
	assert.Equal(t, 6.35, kkMajor[0])

	scales := ScaleVectors()
	scales[0].Values[1] = 1
	assert.Equal(t, 0.0, diatonic.Values[1])
}

func TestScaleVectors(t *testing.T) {
	scales := ScaleVectors()
	require.Len(t, scales, 4)

	sizes := map[string]int{"diatonic": 7, "octatonic": 8, "hexatonic": 6, "chromatic": 12}
	for _, s := range scales {
		assert.Equal(t, sizes[s.Name], s.Size(), s.Name)
		for _, v := range s.Values {
			assert.True(t, v == 0 || v == 1, "%s has non-binary flag %v", s.Name, v)
		}
	}

	got, err := ScaleVector("octatonic")
	require.NoError(t, err)
	assert.Equal(t, octatonic, got)

	_, err = ScaleVector("pentatonic")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}
