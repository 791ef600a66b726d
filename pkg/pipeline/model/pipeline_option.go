package model

import "time"

// PipelineOption defines the interface for pipeline options.
// Options are notified for every Apply call run by the pipeline they are attached to.
type PipelineOption interface {
	// New initialises the pipeline option before a chain is built.
	New() error

	pipelineSourceOption
	pipelineStageOption
	pipelineResultOption

	// Finish runs after the chain has produced its result.
	Finish() error
}

// pipelineSourceOption defines the interface for source options at the pipeline level.
type pipelineSourceOption interface {
	// PrepareSource runs once the source of the chain is known.
	PrepareSource(source *StageInfo) error
}

// pipelineStageOption defines the interface for stage options at the pipeline level.
type pipelineStageOption interface {
	// PrepareStage runs while the chain is built, once per stage.
	PrepareStage(parentStage, stage *StageInfo) error
	// OnStageInput runs everytime the stage receives an element or an aggregate.
	// The duration includes the time spent downstream, since the chain pushes on the call stack.
	OnStageInput(parentStage, stage *StageInfo, elapsed time.Duration) error
}

// pipelineResultOption defines the interface for result options at the pipeline level.
type pipelineResultOption interface {
	// OnResult runs when the sink receives the result of the last stage.
	OnResult(lastStage *StageInfo, totalDuration time.Duration) error
}
