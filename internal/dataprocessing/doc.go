// Package dataprocessing loads participant response logs and reduces them to
// per-stimulus mean ratings.
//
// # Loading
//
// Each log is a CSV (or .xlsx) file written by the presentation tool, one per
// participant session. The first rows of every log are practice trials and are
// dropped by position:
//
//	records, err := dataprocessing.NewResponseLoader(logger).Load(ctx, paths, dataprocessing.DefaultDropRows)
//
// Rows are projected onto domain.TrialRecord. A log missing any of
// RequiredColumns fails the load with a STRUCTURAL_MISMATCH error naming the
// file and column. Empty rating or reaction-time cells become NaN.
//
// # Aggregation
//
//	exp1 := dataprocessing.FilterByExperiment(records, "1")
//	means := dataprocessing.MeanRatings(exp1)
//
// MeanRatings groups by (exp_no, context, probe) and returns groups sorted by
// that key.
package dataprocessing
