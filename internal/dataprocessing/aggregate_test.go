package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"keyprep/pkg/contracts/domain"
)

func rec(exp, ctx, probe string, rating float64, participant string) domain.TrialRecord {
	return domain.TrialRecord{
		ExpNo: exp, Context: ctx, Probe: probe,
		Rating: rating, ReactionTime: 1, Participant: participant,
	}
}

func TestFilterByExperiment(t *testing.T) {
	records := []domain.TrialRecord{
		rec("1", "a", "x", 1, "p1"),
		rec("2", "a", "x", 2, "p1"),
		rec("1", "b", "y", 3, "p2"),
	}

	got := FilterByExperiment(records, "1")
	assert.Equal(t, []domain.TrialRecord{records[0], records[2]}, got)
	assert.Empty(t, FilterByExperiment(records, "3"))
}

func TestFilterResponded(t *testing.T) {
	records := []domain.TrialRecord{
		rec("1", "a", "x", math.NaN(), "p1"),
		rec("1", "a", "y", 4, "p1"),
	}

	got := FilterResponded(records)
	assert.Len(t, got, 1)
	assert.Equal(t, "y", got[0].Probe)
}

func TestParticipants(t *testing.T) {
	records := []domain.TrialRecord{
		rec("1", "a", "x", 1, "p2"),
		rec("1", "a", "x", 1, "p1"),
		rec("1", "a", "x", 1, "p2"),
	}
	assert.Equal(t, []string{"p1", "p2"}, Participants(records))
	assert.Empty(t, Participants(nil))
}

func TestMeanRatings(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.TrialRecord
		want    []domain.MeanRating
	}{
		{
			name: "groups and sorts by key",
			records: []domain.TrialRecord{
				rec("2", "a", "x", 5, "p1"),
				rec("1", "b", "x", 2, "p1"),
				rec("1", "a", "y", 3, "p1"),
				rec("1", "a", "y", 5, "p2"),
				rec("1", "a", "x", 7, "p2"),
			},
			want: []domain.MeanRating{
				{ExpNo: "1", Context: "a", Probe: "x", Mean: 7, N: 1},
				{ExpNo: "1", Context: "a", Probe: "y", Mean: 4, N: 2},
				{ExpNo: "1", Context: "b", Probe: "x", Mean: 2, N: 1},
				{ExpNo: "2", Context: "a", Probe: "x", Mean: 5, N: 1},
			},
		},
		{
			name: "missing ratings are ignored",
			records: []domain.TrialRecord{
				rec("1", "a", "x", math.NaN(), "p1"),
				rec("1", "a", "x", 6, "p2"),
			},
			want: []domain.MeanRating{
				{ExpNo: "1", Context: "a", Probe: "x", Mean: 6, N: 1},
			},
		},
		{
			name: "group without ratings is omitted",
			records: []domain.TrialRecord{
				rec("1", "a", "x", math.NaN(), "p1"),
			},
			want: []domain.MeanRating{},
		},
		{
			name:    "empty input",
			records: nil,
			want:    []domain.MeanRating{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeanRatings(tt.records))
		})
	}
}
