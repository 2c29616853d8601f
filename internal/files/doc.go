// Package files provides deterministic file discovery for stimulus trees and
// response logs.
//
// Directory listings from the operating system come back in no guaranteed
// order. Every listing in this package is sorted by path before it is
// returned, so manifests built from it are reproducible across runs and
// platforms.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//
//	// Stimulus files for one experiment
//	contexts, err := discovery.ListFiles("stimuli/exp1/contexts", []string{".wav"})
//
//	// Participant logs
//	logs, err := discovery.FindFilesByPattern("data/responses", "*.csv")
//
// A directory that does not exist is reported as a MISSING_DIRECTORY error,
// which callers may treat as an empty result.
package files
