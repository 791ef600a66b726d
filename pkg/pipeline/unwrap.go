package pipeline

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// Option is a value that may be absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether the value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// OrElse returns the value, or def when it is absent.
func (o Option[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}

	return def
}

// Clone returns a copy of o whose value shares no storage with it.
func (o Option[T]) Clone() any {
	if !o.ok {
		return o
	}
	v, _ := clone(o.value).(T)

	return Option[T]{value: v, ok: true}
}

// Result is a value or the error that prevented computing it.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok returns a successful result.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail returns a failed result.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Unpack returns the value and the error.
func (r Result[T]) Unpack() (T, error) {
	return r.Value, r.Err
}

// unwrapStage takes over the rest of the chain. It feeds it the unwrapped values until the
// first absent or failed one, and wraps the result of the rest in the container it came from.
type unwrapStage[T, R any] struct {
	name  string
	in    reflect.Type
	out   reflect.Type
	split func(elem any) (value T, failure any, ok bool)
	wrap  func(res R) any
	rest  *plan
}

func (s *unwrapStage[T, R]) absorb(rest []any) (Stage, error) {
	pl, err := newPlan(rest, model.Incremental, typeOf[T]())
	if err == nil {
		err = checkResultType(pl, typeOf[R]())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "after %s", s.name)
	}
	absorbed := *s
	absorbed.rest = pl

	return &absorbed, nil
}

func (s *unwrapStage[T, R]) Describe() model.StageInfo {
	return model.StageInfo{
		Name:   s.name,
		Family: model.UnwrapFamily,
		Input:  model.Incremental,
		Output: model.Complete,
		In:     s.in,
		Out:    s.out,
	}
}

func (s *unwrapStage[T, R]) Instantiate() Processor {
	return &unwrapProcessor[T, R]{stage: s}
}

func (s *unwrapStage[T, R]) Validate() error {
	if s.rest == nil {
		return errors.Errorf("%s was not given the rest of the chain", s.name)
	}

	return nil
}

type unwrapProcessor[T, R any] struct {
	stage   *unwrapStage[T, R]
	rest    *chain
	run     *run
	failure any
	failed  bool
}

func (p *unwrapProcessor[T, R]) bindChain(r *run) error {
	p.run = r
	rest, err := p.stage.rest.instantiate(r, false)
	if err != nil {
		return err
	}
	p.rest = rest

	return nil
}

func (p *unwrapProcessor[T, R]) ProcessIncremental(elem any, _ Next) {
	if p.failed {
		return
	}
	v, failure, ok := p.stage.split(elem)
	if !ok {
		p.failed = true
		p.failure = failure
		p.run.logger.Debug().Str("stage", p.stage.name).Msg("short-circuit")

		return
	}
	p.rest.head().ProcessIncremental(v)
}

func (p *unwrapProcessor[T, R]) Done() bool {
	return p.failed || p.rest.head().Done()
}

func (p *unwrapProcessor[T, R]) End(next Next) {
	if p.failed {
		next.ProcessComplete(Owned(p.failure))

		return
	}
	p.rest.head().End()
	res, err := p.rest.result()
	if err != nil {
		p.run.fail(err)

		return
	}
	next.ProcessComplete(Owned(p.stage.wrap(as[R](p.stage.name, res))))
}

// UnwrapOptional feeds the present values of Option[T] elements to the rest of the chain,
// whose result must be an R. The pipeline ends with Some(result), or with None[R] as soon
// as an absent element is met, in which case no further element is read.
func UnwrapOptional[T, R any]() Stage {
	return &unwrapStage[T, R]{
		name: "unwrap-optional",
		in:   typeOf[Option[T]](),
		out:  typeOf[Option[R]](),
		split: func(elem any) (T, any, bool) {
			opt := as[Option[T]]("unwrap-optional", elem)
			if !opt.ok {
				return opt.value, None[R](), false
			}

			return opt.value, nil, true
		},
		wrap: func(res R) any {
			return Some(res)
		},
	}
}

// UnwrapResult feeds the values of Result[T] elements to the rest of the chain, whose result
// must be an R. The pipeline ends with Ok(result), or with the first failed element's error
// as a Result[R], in which case no further element is read.
func UnwrapResult[T, R any]() Stage {
	return &unwrapStage[T, R]{
		name: "unwrap-result",
		in:   typeOf[Result[T]](),
		out:  typeOf[Result[R]](),
		split: func(elem any) (T, any, bool) {
			res := as[Result[T]]("unwrap-result", elem)
			if res.Err != nil {
				return res.Value, Fail[R](res.Err), false
			}

			return res.Value, nil, true
		},
		wrap: func(res R) any {
			return Ok(res)
		},
	}
}

var (
	_ Cloner       = Option[int]{}
	_ tailAbsorber = (*unwrapStage[int, int])(nil)
	_ Validator    = (*unwrapStage[int, int])(nil)
	_ chainBinder  = (*unwrapProcessor[int, int])(nil)
	_ Ender        = (*unwrapProcessor[int, int])(nil)
	_ Doner        = (*unwrapProcessor[int, int])(nil)
)
