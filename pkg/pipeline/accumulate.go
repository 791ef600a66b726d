package pipeline

import (
	"cmp"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// accumulator folds every element into acc and forwards acc, or result(acc) when set, at End.
type accumulator[T, R any] struct {
	name   string
	acc    R
	fold   func(R, T) R
	result func(R) any
}

func (a *accumulator[T, R]) ProcessIncremental(elem any, _ Next) {
	a.acc = a.fold(a.acc, as[T](a.name, elem))
}

func (a *accumulator[T, R]) End(next Next) {
	if a.result != nil {
		next.ProcessComplete(Owned(a.result(a.acc)))

		return
	}
	next.ProcessComplete(Owned(a.acc))
}

func newAccumulator[T, R any](name string, init func() R, fold func(R, T) R) Stage {
	return NewStage(accumulateInfo[T, R](name, model.AccumulateFamily), func() Processor {
		return &accumulator[T, R]{name: name, acc: init(), fold: fold}
	})
}

// Accumulate folds the elements into a value starting from init.
func Accumulate[T, R any](init R, fn func(acc R, elem T) R) Stage {
	return newAccumulator("accumulate", func() R {
		acc, _ := clone(init).(R)

		return acc
	}, fn)
}

// To collects the elements into a new slice.
func To[T any]() Stage {
	return newAccumulator("to", func() []T { return []T{} }, func(acc []T, elem T) []T {
		return append(acc, elem)
	})
}

// Count counts the elements.
func Count[T any]() Stage {
	return newAccumulator("count", func() int { return 0 }, func(acc int, _ T) int {
		return acc + 1
	})
}

// Sum adds the elements.
func Sum[T Number]() Stage {
	return newAccumulator("sum", func() T { return 0 }, func(acc, elem T) T {
		return acc + elem
	})
}

type extremum[T cmp.Ordered] struct {
	value T
	set   bool
}

// Min returns the smallest element, the zero value when there is none.
func Min[T cmp.Ordered]() Stage {
	return extremumStage[T]("min", func(a, b T) bool { return b < a })
}

// Max returns the largest element, the zero value when there is none.
func Max[T cmp.Ordered]() Stage {
	return extremumStage[T]("max", func(a, b T) bool { return b > a })
}

func extremumStage[T cmp.Ordered](name string, better func(curr, cand T) bool) Stage {
	info := accumulateInfo[T, T](name, model.AccumulateFamily)

	return NewStage(info, func() Processor {
		return &accumulator[T, extremum[T]]{
			name: name,
			fold: func(acc extremum[T], elem T) extremum[T] {
				if !acc.set || better(acc.value, elem) {
					return extremum[T]{value: elem, set: true}
				}

				return acc
			},
			result: func(acc extremum[T]) any {
				return acc.value
			},
		}
	})
}

// FirstOf returns the first element, and stops the upstream as soon as it has it.
func FirstOf[T any]() Stage {
	return NewStage(accumulateInfo[T, Option[T]]("first-of", model.AccumulateFamily), func() Processor {
		return &firstProcessor[T]{}
	})
}

type firstProcessor[T any] struct {
	first Option[T]
}

func (p *firstProcessor[T]) ProcessIncremental(elem any, _ Next) {
	if !p.first.ok {
		p.first = Some(as[T]("first-of", elem))
	}
}

func (p *firstProcessor[T]) Done() bool {
	return p.first.ok
}

func (p *firstProcessor[T]) End(next Next) {
	next.ProcessComplete(Owned(p.first))
}

// LastOf returns the last element.
func LastOf[T any]() Stage {
	return newAccumulator("last-of", None[T], func(_ Option[T], elem T) Option[T] {
		return Some(elem)
	})
}

var (
	_ Ender = (*accumulator[int, int])(nil)
	_ Doner = (*firstProcessor[int])(nil)
)
