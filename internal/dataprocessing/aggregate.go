package dataprocessing

import (
	"math"
	"sort"

	"keyprep/pkg/contracts/domain"
)

// FilterByExperiment returns the records of one experiment, in input order
func FilterByExperiment(records []domain.TrialRecord, expNo string) []domain.TrialRecord {
	var out []domain.TrialRecord
	for _, r := range records {
		if r.ExpNo == expNo {
			out = append(out, r)
		}
	}
	return out
}

// FilterResponded drops trials without a rating
func FilterResponded(records []domain.TrialRecord) []domain.TrialRecord {
	var out []domain.TrialRecord
	for _, r := range records {
		if !math.IsNaN(r.Rating) {
			out = append(out, r)
		}
	}
	return out
}

// Participants returns the distinct participant IDs, sorted
func Participants(records []domain.TrialRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Participant] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// MeanRatings groups records by (exp_no, context, probe) and averages the
// ratings of each group. Trials without a rating are ignored and groups with
// none left are omitted. Output is sorted by key.
func MeanRatings(records []domain.TrialRecord) []domain.MeanRating {
	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[domain.TrialKey]*acc)

	for _, r := range records {
		if math.IsNaN(r.Rating) {
			continue
		}
		key := r.Key()
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.sum += r.Rating
		a.n++
	}

	out := make([]domain.MeanRating, 0, len(groups))
	for key, a := range groups {
		out = append(out, domain.MeanRating{
			ExpNo:   key.ExpNo,
			Context: key.Context,
			Probe:   key.Probe,
			Mean:    a.sum / float64(a.n),
			N:       a.n,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ExpNo != out[j].ExpNo {
			return out[i].ExpNo < out[j].ExpNo
		}
		if out[i].Context != out[j].Context {
			return out[i].Context < out[j].Context
		}
		return out[i].Probe < out[j].Probe
	})
	return out
}
