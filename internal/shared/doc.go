// Package shared holds helpers used across keyprep packages that do not belong
// to a single pipeline stage.
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler and NewTestLogger for asserting on structured logs
//   - WriteStimulusTree for laying out <root>/<exp>/{contexts,targets}/ trees
//   - WriteResponseLog and ResponseRow for building presentation-tool CSV logs
//
// Nothing here may import a pipeline package, so any package can use it in
// tests without creating a cycle.
package shared
