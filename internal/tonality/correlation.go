package tonality

import (
	"errors"
	"fmt"
	"math"

	apperrors "keyprep/internal/errors"
	"keyprep/pkg/contracts/domain"
)

// Epsilon is the tolerance used for symmetry, diagonal and range guarantees
const Epsilon = 1e-9

// Matrix is a square, labelled correlation matrix
type Matrix struct {
	Labels []string
	Values [][]float64
}

// Size returns the number of rows (and columns)
func (m *Matrix) Size() int {
	return len(m.Values)
}

// At returns the coefficient at row i, column j
func (m *Matrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Pearson computes the Pearson correlation coefficient of x and y.
// Population moments are used for both covariance and deviations.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, apperrors.NewInvalidArgumentError("length", fmt.Sprintf("%d/%d", len(x), len(y)),
			"inputs must have equal length")
	}
	n := len(x)
	if n < 2 {
		return 0, apperrors.NewInvalidArgumentError("length", n, "at least two values are required")
	}

	meanX := mean(x)
	meanY := mean(y)

	var sumXY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}

	cov := sumXY / float64(n)
	sdX := math.Sqrt(sumXX / float64(n))
	sdY := math.Sqrt(sumYY / float64(n))
	if sdX == 0 || sdY == 0 {
		return 0, apperrors.NewNumericallyUndefinedError("correlation undefined for zero-variance input")
	}

	r := cov / (sdX * sdY)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, apperrors.NewNumericallyUndefinedError("correlation is not finite")
	}
	// rounding can push collinear inputs just past the unit interval
	return math.Max(-1, math.Min(1, r)), nil
}

func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// CorrelationMatrix computes the Pearson coefficient for every ordered pair of
// profiles. Rows and columns follow the input order.
func CorrelationMatrix(profiles []domain.Profile) (*Matrix, error) {
	n := len(profiles)
	m := &Matrix{
		Labels: Labels(profiles),
		Values: make([][]float64, n),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
	}

	vectors := make([][]float64, n)
	for i, p := range profiles {
		vectors[i] = p.Slice()
	}

	// Upper triangle is computed once and mirrored so M[i][j] == M[j][i] exactly.
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r, err := Pearson(vectors[i], vectors[j])
			if err != nil {
				var appErr *apperrors.AppError
				if errors.As(err, &appErr) {
					appErr.WithContext("row", m.Labels[i]).WithContext("column", m.Labels[j])
				}
				return nil, err
			}
			if i == j {
				r = 1.0
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// ScaleFit holds the correlation of reference scale vectors with key profiles
type ScaleFit struct {
	Scales   []string
	Profiles []string
	// Values[s][p] is the coefficient of scale s against profile p
	Values [][]float64
	// Skipped lists scales with zero variance, which have no correlation
	Skipped []string
}

// FitScales correlates each scale vector with each profile. Zero-variance
// scales are left out of the result and reported in Skipped.
func FitScales(scales []domain.BinaryScaleVector, profiles []domain.Profile) (*ScaleFit, error) {
	fit := &ScaleFit{Profiles: Labels(profiles)}
	for _, s := range scales {
		row := make([]float64, len(profiles))
		skipped := false
		for j, p := range profiles {
			r, err := Pearson(s.Slice(), p.Slice())
			if apperrors.IsType(err, apperrors.ErrTypeNumericallyUndefined) {
				skipped = true
				break
			}
			if err != nil {
				return nil, fmt.Errorf("scale %s against %s: %w", s.Name, p.Label(), err)
			}
			row[j] = r
		}
		if skipped {
			fit.Skipped = append(fit.Skipped, s.Name)
			continue
		}
		fit.Scales = append(fit.Scales, s.Name)
		fit.Values = append(fit.Values, row)
	}
	return fit, nil
}
