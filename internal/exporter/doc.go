// Package exporter writes keyprep artifacts to disk.
//
// WorkbookWriter produces single-sheet xlsx files with excelize: the key
// profile correlation matrix, the trial condition manifests read by the
// experiment-presentation tool, the scale fit table and the mean ratings.
//
// CSVWriter writes the combined response table as CSV with a UTF-8 BOM so
// Excel opens it with the right encoding.
//
// Relative paths are resolved against the writer's base directory and parent
// directories are created as needed:
//
//	w := exporter.NewWorkbookWriter(paths.OutputDir, logger)
//	err := w.ExportConditions("conditions.xlsx", conditions)
package exporter
