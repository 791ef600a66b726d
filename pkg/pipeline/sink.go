package pipeline

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// sink is the successor of the last stage. It keeps the aggregate the chain ends with.
type sink struct {
	run      *run
	last     *model.StageInfo
	observed bool

	result Aggregate
	set    bool
}

func (s *sink) ProcessIncremental(any) {
	s.run.fail(errors.Wrapf(ErrUnexpectedElement, "sink after %s", s.last.Label()))
}

func (s *sink) ProcessComplete(agg Aggregate) {
	if s.run.err != nil {
		return
	}
	s.result = agg
	s.set = true
	if s.observed {
		s.run.onResult(s.last, time.Since(s.run.startTime))
	}
}

func (s *sink) End() {}

func (s *sink) Done() bool {
	return false
}

var _ Next = (*sink)(nil)
