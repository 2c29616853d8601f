// Package app wires configuration, logging, tracing and the pipeline
// components into a single runnable unit.
//
// A run executes up to four stages, always in this order:
//
//	correlation  24x24 key profile correlation matrix and scale fit table
//	conditions   context x target trial manifest per experiment
//	practice     fixed practice trial manifest
//	responses    combined participant logs and per-stimulus mean ratings
//
// Each stage is traced as its own span and logged with the run ID. The first
// failing stage stops the run and its error is returned prefixed with the
// stage name.
//
// Usage:
//
//	a, err := app.New(cfg, logger, tracing)
//	if err != nil {
//	    return err
//	}
//	result, err := a.Run(ctx, app.StageCorrelation, app.StageConditions)
package app
