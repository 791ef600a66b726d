package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// PipelineOption configures a pipeline.
type PipelineOption func(p *Pipeline)

// WithHooks attaches pipeline options notified while chains are built and driven.
func WithHooks(hooks ...model.PipelineOption) PipelineOption {
	return func(p *Pipeline) {
		p.opts = append(p.opts, hooks...)
	}
}

// WithLogger sets the logger used to report chain construction and early terminations.
func WithLogger(logger zerolog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithGeneratorLimit caps the number of values a single Apply call pulls from lazy sequences.
// Exceeding it fails the call with ErrGeneratorLimit. Zero means no limit.
func WithGeneratorLimit(limit int) PipelineOption {
	return func(p *Pipeline) {
		p.generatorLimit = limit
	}
}
