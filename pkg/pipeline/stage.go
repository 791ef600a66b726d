package pipeline

import (
	"reflect"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// Stage is a reusable processing unit.
//
// A stage only describes itself: every Apply call asks it for a fresh processor,
// so the state a processor accumulates never outlives the call.
type Stage interface {
	// Describe returns the styles and element types of the stage.
	Describe() model.StageInfo
	// Instantiate returns a new processor for one chain.
	Instantiate() Processor
}

// Processor holds the state of a stage for one Apply call.
// It implements IncrementalProcessor when the stage input style is Incremental,
// CompleteProcessor when it is Complete, and optionally Ender and Doner.
type Processor any

// IncrementalProcessor is called once per element.
// It forwards zero, one or many elements to next.
type IncrementalProcessor interface {
	ProcessIncremental(elem any, next Next)
}

// CompleteProcessor is called once with the whole upstream aggregate.
type CompleteProcessor interface {
	ProcessComplete(agg Aggregate, next Next)
}

// Ender is called once the incremental input is exhausted.
// Stages accumulating state forward it from End. The chain ends the downstream
// stage afterwards when the stage output is Incremental.
type Ender interface {
	End(next Next)
}

// Doner is polled after each incremental step. Returning true stops the upstream iteration.
type Doner interface {
	Done() bool
}

// Validator is implemented by stages that can only be checked once built, such as the
// higher-order stages holding sub-pipelines.
type Validator interface {
	Validate() error
}

// Next is the successor of a processor in a chain.
type Next interface {
	ProcessIncremental(elem any)
	ProcessComplete(agg Aggregate)
	End()
	Done() bool
}

// Aggregate is a whole value handed from one stage to the next, tagged with how it relates to caller storage.
type Aggregate struct {
	Value     any
	Ownership model.Ownership
}

// Owned tags v as belonging to the pipeline.
func Owned(v any) Aggregate {
	return Aggregate{Value: v, Ownership: model.Owned}
}

// Mutable returns an aggregate that can be written in place.
// Read-only aliases are copied first, mutable aliases and owned values are returned as is.
func (a Aggregate) Mutable() Aggregate {
	if a.Ownership == model.ConstAlias {
		return Owned(clone(a.Value))
	}

	return a
}

// Detach returns a value that does not alias any caller storage.
func (a Aggregate) Detach() any {
	if a.Ownership.Aliased() {
		return clone(a.Value)
	}

	return a.Value
}

type stage struct {
	info   model.StageInfo
	create func() Processor
	err    error
}

func (s *stage) Describe() model.StageInfo {
	return s.info
}

func (s *stage) Instantiate() Processor {
	return s.create()
}

func (s *stage) Validate() error {
	return s.err
}

// NewStage builds a stage from its descriptor and a processor factory.
func NewStage(info model.StageInfo, create func() Processor) Stage {
	if info.Family == "" {
		info.Family = model.CustomFamily
	}

	return &stage{info: info, create: create}
}

// IncrementalFunc adapts a function to IncrementalProcessor.
type IncrementalFunc func(elem any, next Next)

func (f IncrementalFunc) ProcessIncremental(elem any, next Next) {
	f(elem, next)
}

// CompleteFunc adapts a function to CompleteProcessor.
type CompleteFunc func(agg Aggregate, next Next)

func (f CompleteFunc) ProcessComplete(agg Aggregate, next Next) {
	f(agg, next)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func incrementalInfo[I, O any](name string, family model.Family) model.StageInfo {
	return model.StageInfo{
		Name:   name,
		Family: family,
		Input:  model.Incremental,
		Output: model.Incremental,
		In:     typeOf[I](),
		Out:    typeOf[O](),
	}
}

func accumulateInfo[I, O any](name string, family model.Family) model.StageInfo {
	info := incrementalInfo[I, O](name, family)
	info.Output = model.Complete

	return info
}

func completeInfo[I, O any](name string, family model.Family) model.StageInfo {
	info := incrementalInfo[I, O](name, family)
	info.Input = model.Complete
	info.Output = model.Complete

	return info
}

var (
	_ IncrementalProcessor = IncrementalFunc(nil)
	_ CompleteProcessor    = CompleteFunc(nil)
	_ Validator            = (*stage)(nil)
)
