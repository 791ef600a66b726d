package pipeline

import (
	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// Transform forwards fn(elem) for each element.
func Transform[I, O any](fn func(I) O) Stage {
	return NewStage(incrementalInfo[I, O]("transform", model.TransformFamily), func() Processor {
		return IncrementalFunc(func(elem any, next Next) {
			next.ProcessIncremental(fn(as[I]("transform", elem)))
		})
	})
}

// FlatMap forwards every value of fn(elem), stopping early when the chain is done.
func FlatMap[I, O any](fn func(I) []O) Stage {
	return NewStage(incrementalInfo[I, O]("flat-map", model.TransformFamily), func() Processor {
		return IncrementalFunc(func(elem any, next Next) {
			for _, out := range fn(as[I]("flat-map", elem)) {
				if next.Done() {
					return
				}
				next.ProcessIncremental(out)
			}
		})
	})
}

// Tap calls fn for each element and forwards it unchanged.
func Tap[T any](fn func(T)) Stage {
	return NewStage(incrementalInfo[T, T]("tap", model.TransformFamily), func() Processor {
		return IncrementalFunc(func(elem any, next Next) {
			fn(as[T]("tap", elem))
			next.ProcessIncremental(elem)
		})
	})
}

// Filter forwards the elements satisfying pred.
func Filter[T any](pred func(T) bool) Stage {
	return NewStage(incrementalInfo[T, T]("filter", model.FilterFamily), func() Processor {
		return IncrementalFunc(func(elem any, next Next) {
			if pred(as[T]("filter", elem)) {
				next.ProcessIncremental(elem)
			}
		})
	})
}

type takeProcessor[T any] struct {
	limit, taken int
}

func (p *takeProcessor[T]) ProcessIncremental(elem any, next Next) {
	if p.taken >= p.limit {
		return
	}
	p.taken++
	next.ProcessIncremental(as[T]("take", elem))
}

func (p *takeProcessor[T]) Done() bool {
	return p.taken >= p.limit
}

// Take forwards the first n elements and then asks the upstream to stop.
func Take[T any](n int) Stage {
	stg := &stage{
		info: incrementalInfo[T, T]("take", model.FilterFamily),
		create: func() Processor {
			return &takeProcessor[T]{limit: n}
		},
	}
	if n < 0 {
		stg.err = ErrTakeNegative
	}

	return stg
}

type takeWhileProcessor[T any] struct {
	pred func(T) bool
	done bool
}

func (p *takeWhileProcessor[T]) ProcessIncremental(elem any, next Next) {
	if p.done {
		return
	}
	if !p.pred(as[T]("take-while", elem)) {
		p.done = true

		return
	}
	next.ProcessIncremental(elem)
}

func (p *takeWhileProcessor[T]) Done() bool {
	return p.done
}

// TakeWhile forwards elements until pred fails for the first time.
func TakeWhile[T any](pred func(T) bool) Stage {
	return NewStage(incrementalInfo[T, T]("take-while", model.FilterFamily), func() Processor {
		return &takeWhileProcessor[T]{pred: pred}
	})
}

// Drop skips the first n elements.
func Drop[T any](n int) Stage {
	return NewStage(incrementalInfo[T, T]("drop", model.FilterFamily), func() Processor {
		dropped := 0

		return IncrementalFunc(func(elem any, next Next) {
			if dropped < n {
				dropped++

				return
			}
			next.ProcessIncremental(as[T]("drop", elem))
		})
	})
}

// DropWhile skips elements until pred fails for the first time.
func DropWhile[T any](pred func(T) bool) Stage {
	return NewStage(incrementalInfo[T, T]("drop-while", model.FilterFamily), func() Processor {
		dropping := true

		return IncrementalFunc(func(elem any, next Next) {
			if dropping && pred(as[T]("drop-while", elem)) {
				return
			}
			dropping = false
			next.ProcessIncremental(elem)
		})
	})
}

// Dedup drops elements equal to the one just before them.
func Dedup[T comparable]() Stage {
	return NewStage(incrementalInfo[T, T]("dedup", model.FilterFamily), func() Processor {
		var (
			prev T
			seen bool
		)

		return IncrementalFunc(func(elem any, next Next) {
			curr := as[T]("dedup", elem)
			if seen && curr == prev {
				return
			}
			prev, seen = curr, true
			next.ProcessIncremental(curr)
		})
	})
}

var (
	_ Doner = (*takeProcessor[int])(nil)
	_ Doner = (*takeWhileProcessor[int])(nil)
)
