package pipeline

import (
	"reflect"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// Pipeline holds the settings shared by the Apply calls run through it.
// A pipeline without hooks can be used by many goroutines at once.
type Pipeline struct {
	opts           []model.PipelineOption
	logger         zerolog.Logger
	generatorLimit int
}

// New creates a new pipeline.
func New(opts ...PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(pipe)
	}
	if pipe.generatorLimit < 0 {
		return nil, errors.Errorf("generator limit must not be negative, got %d", pipe.generatorLimit)
	}

	return pipe, nil
}

var defaultPipeline = &Pipeline{logger: zerolog.Nop()}

// Apply builds a chain from the stages, drives it once with src and returns its result.
//
// src is a Source built with Own, Ref, MutRef or Move, a Sequence such as a generator,
// a Group starting with one of those, or a bare value. Bare slices and maps are read-only
// aliases, other bare values are owned copies. The result never aliases src nor any
// value internal to the chain.
func Apply[R any](src any, stages ...any) (R, error) {
	return Run[R](defaultPipeline, src, stages...)
}

// MustApply is like Apply but panics if the chain cannot be built or run.
func MustApply[R any](src any, stages ...any) R {
	res, err := Apply[R](src, stages...)
	if err != nil {
		panic(err)
	}

	return res
}

// Run is Apply with the settings of pipe.
func Run[R any](pipe *Pipeline, src any, stages ...any) (result R, err error) {
	if pipe == nil {
		return result, ErrPipelineMustBeSet
	}
	r := pipe.newRun()
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		typeErr, ok := rec.(*elementTypeError)
		if !ok {
			panic(rec)
		}
		err = errors.Wrap(typeErr, "pipeline aborted")
	}()

	res, err := r.execute(src, stages)
	if err != nil {
		return result, err
	}
	if res == nil {
		if nilable(typeOf[R]()) {
			return result, nil
		}

		return result, errors.Wrapf(ErrResultType, "expected %s, got nil", typeOf[R]())
	}
	typed, ok := res.(R)
	if !ok {
		return result, errors.Wrapf(ErrResultType, "expected %s, got %T", typeOf[R](), res)
	}

	return typed, nil
}

// run is the state of one Apply call. Sub-chains share it with their owner.
type run struct {
	logger    zerolog.Logger
	hooks     []model.PipelineOption
	limit     int
	startTime time.Time

	pulled int
	err    error
}

func (p *Pipeline) newRun() *run {
	return &run{
		logger:    p.logger,
		hooks:     p.opts,
		limit:     p.generatorLimit,
		startTime: time.Now(),
	}
}

func (r *run) execute(src any, items []any) (any, error) {
	for _, opt := range r.hooks {
		if err := opt.New(); err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	flat := flatten(append([]any{src}, items...))
	if len(flat) == 0 {
		return nil, errors.Wrap(ErrSourcePosition, "the chain is empty, a source is missing")
	}
	if _, ok := flat[0].(Stage); ok {
		return nil, errors.Wrap(ErrSourcePosition, "the first item is a stage, a source is missing")
	}
	source := sourceOf(flat[0])
	if c, ok := source.value.(consumable); ok && c.Consumed() {
		return nil, ErrGeneratorConsumed
	}

	pl, err := newPlan(flat[1:], model.Complete, sourceType(source.value))
	if err != nil {
		r.logger.Debug().Err(err).Msg("chain rejected")

		return nil, err
	}
	chn, err := pl.instantiate(r, true)
	if err != nil {
		return nil, err
	}
	if err := r.prepare(pl); err != nil {
		return nil, err
	}
	r.logger.Debug().
		Int("stages", len(pl.stages)).
		Str("chain", pl.String()).
		Stringer("ownership", source.ownership).
		Msg("chain built")

	chn.head().ProcessComplete(Aggregate{Value: source.value, Ownership: source.ownership})
	res, err := chn.result()
	if err != nil {
		return nil, err
	}

	for _, opt := range r.hooks {
		if err := opt.Finish(); err != nil {
			return nil, errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return res, nil
}

func (r *run) prepare(pl *plan) error {
	for _, opt := range r.hooks {
		if err := opt.PrepareSource(model.StartStage); err != nil {
			return errors.Wrap(err, "unable to prepare source")
		}
		for i := range pl.infos {
			parent := model.StartStage
			if i > 0 {
				parent = &pl.infos[i-1]
			}
			if err := opt.PrepareStage(parent, &pl.infos[i]); err != nil {
				return errors.Wrapf(err, "unable to prepare stage %s", pl.infos[i].Label())
			}
		}
	}

	return nil
}

func sourceType(v any) reflect.Type {
	if seq, ok := v.(Sequence); ok {
		return reflect.SliceOf(seq.ElemType())
	}
	if v == nil {
		return nil
	}

	return reflect.TypeOf(v)
}

func (r *run) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// iterate calls yield for each element of v, enforcing the generator limit on lazy sequences.
func (r *run) iterate(v any, yield func(any) bool) {
	_, lazy := v.(Sequence)
	err := each(v, func(elem any) bool {
		if lazy && r.limit > 0 {
			r.pulled++
			if r.pulled > r.limit {
				r.logger.Warn().Int("limit", r.limit).Msg("generator limit exceeded")
				r.fail(errors.Wrapf(ErrGeneratorLimit, "more than %d values pulled", r.limit))

				return false
			}
		}

		return yield(elem)
	})
	if err != nil {
		r.fail(errors.Wrapf(err, "%T", v))
	}
}

// materialize collects a lazy sequence into an owned slice.
func (r *run) materialize(seq Sequence) any {
	typ := seq.ElemType()
	out := reflect.MakeSlice(reflect.SliceOf(typ), 0, 0)
	r.iterate(seq, func(elem any) bool {
		if elem == nil {
			out = reflect.Append(out, reflect.Zero(typ))
		} else {
			out = reflect.Append(out, reflect.ValueOf(elem))
		}

		return r.err == nil
	})

	return out.Interface()
}

func (r *run) onStageInput(parent, stage *model.StageInfo, elapsed time.Duration) {
	for _, opt := range r.hooks {
		if err := opt.OnStageInput(parent, stage, elapsed); err != nil {
			r.fail(errors.Wrapf(err, "unable to run stage option on %s", stage.Label()))
		}
	}
}

func (r *run) onResult(last *model.StageInfo, total time.Duration) {
	for _, opt := range r.hooks {
		if err := opt.OnResult(last, total); err != nil {
			r.fail(errors.Wrap(err, "unable to run result option"))
		}
	}
}
