package domain

// Condition pairs one context stimulus with one target stimulus within an experiment
type Condition struct {
	Experiment string `json:"experiment" csv:"experiment" validate:"required"`
	Context    string `json:"contexts" csv:"contexts" validate:"required"`
	Target     string `json:"targets" csv:"targets" validate:"required"`
}

// PracticePair is one practice trial shown before the experiment proper
type PracticePair struct {
	Context string `json:"wav_pcontext" csv:"wav_pcontext"`
	Target  string `json:"wav_ptarget" csv:"wav_ptarget"`
}

// TrialRecord is one participant response projected from a presentation log.
//
// Rating and ReactionTime are NaN when the participant gave no response.
type TrialRecord struct {
	ExpNo        string  `json:"exp_no" csv:"exp_no" validate:"required"`
	Context      string  `json:"context" csv:"context"`
	Probe        string  `json:"probe" csv:"probe"`
	Rating       float64 `json:"rating" csv:"rating"`
	ReactionTime float64 `json:"reaction_time" csv:"reaction_time"`
	Participant  string  `json:"participant" csv:"participant" validate:"required"`
	Date         string  `json:"date" csv:"date"`
}

// TrialKey identifies the stimulus combination a trial belongs to
type TrialKey struct {
	ExpNo   string
	Context string
	Probe   string
}

// Key returns the grouping key of the record
func (r TrialRecord) Key() TrialKey {
	return TrialKey{ExpNo: r.ExpNo, Context: r.Context, Probe: r.Probe}
}

// MeanRating is the average rating of all trials sharing a TrialKey
type MeanRating struct {
	ExpNo   string  `json:"exp_no" csv:"exp_no"`
	Context string  `json:"context" csv:"context"`
	Probe   string  `json:"probe" csv:"probe"`
	Mean    float64 `json:"mean_rating" csv:"mean_rating"`
	N       int     `json:"n" csv:"n"`
}
