package model

import "time"

// PipelineOption defines the interface for features following a pipeline lifecycle.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error
	// PrepareStep runs when a step is appended after parentStep.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs every time a step returns during a run.
	OnStepOutput(step *StepInfo, computationDuration time.Duration) error
	// Finish runs after a successful run.
	Finish(totalDuration time.Duration) error
}
