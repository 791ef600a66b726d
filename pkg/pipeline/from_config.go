package pipeline

import (
	"os"

	"github.com/pkg/errors"

	"github.com/askiada/go-chain/internal/logging"
	"github.com/askiada/go-chain/pkg/pipeline/config"
	"github.com/askiada/go-chain/pkg/pipeline/drawer"
	"github.com/askiada/go-chain/pkg/pipeline/measure"
)

// NewFromConfig creates a pipeline logging to stderr, with the generator limit of cfg.
// The pipeline measures its stages when cfg.Measure is set and draws its chain to
// cfg.DrawFile when it is not empty.
func NewFromConfig(cfg config.Config, opts ...PipelineOption) (*Pipeline, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create logger")
	}

	var m measure.Measure
	if cfg.Measure {
		m = measure.NewDefaultMeasure()
		opts = append(opts, WithHooks(measure.PipelineMeasure(m)))
	}
	if cfg.DrawFile != "" {
		opts = append(opts, WithHooks(drawer.PipelineDrawer(drawer.NewFileDrawer(cfg.DrawFile), m)))
	}

	return New(append([]PipelineOption{WithLogger(logger), WithGeneratorLimit(cfg.GeneratorLimit)}, opts...)...)
}
