// Package tonality builds the Krumhansl-Kessler key profiles and the reference
// correlation matrix between them.
//
// # Profiles
//
// The 24 key profiles are cyclic rotations of two base vectors, one per mode.
// A profile for tonic t satisfies values[i] == base[(i+t) mod 12]. AllProfiles
// enumerates them in a fixed order that downstream exports index positionally:
//
//	C major, C minor, C# major, C# minor, ..., B major, B minor
//
// The profile for (t, mode) sits at index 2t for major and 2t+1 for minor.
// Labels name the rotation offset t, not the key the rotated vector is
// centred on: a left rotation by t puts the base tonic at pitch class
// (12-t) mod 12.
//
// # Correlation
//
// CorrelationMatrix computes the Pearson coefficient between every ordered pair
// of profiles:
//
//	profiles := tonality.AllProfiles()
//	m, err := tonality.CorrelationMatrix(profiles)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(m.At(0, 1)) // offset 0 major vs offset 0 minor
//
// Inputs with zero variance have no defined correlation and fail with a
// NUMERICALLY_UNDEFINED error instead of producing NaN. The KK base vectors
// never trigger this; the chromatic scale vector does.
package tonality
