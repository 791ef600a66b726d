package pipeline

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// Pair is a two-value element. Stages address each component on its own.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair returns Pair{a, b}.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

// Tuple is an ordered list of values of possibly different types, as produced by Tee.
type Tuple []any

// Get returns the i-th value of t as a T.
func Get[T any](t Tuple, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(t) {
		return zero, errors.Errorf("index %d out of a tuple of %d values", i, len(t))
	}
	v, ok := t[i].(T)
	if !ok {
		return zero, errors.Wrapf(ErrResultType, "value %d has type %T", i, t[i])
	}

	return v, nil
}

// Enumerate pairs each element with its index.
func Enumerate[T any]() Stage {
	return NewStage(incrementalInfo[T, Pair[int, T]]("enumerate", model.ReshapeFamily), func() Processor {
		idx := 0

		return IncrementalFunc(func(elem any, next Next) {
			next.ProcessIncremental(MakePair(idx, as[T]("enumerate", elem)))
			idx++
		})
	})
}

// MapPair forwards fn(first, second) for each pair.
func MapPair[A, B, O any](fn func(A, B) O) Stage {
	return NewStage(incrementalInfo[Pair[A, B], O]("map-pair", model.ReshapeFamily), func() Processor {
		return IncrementalFunc(func(elem any, next Next) {
			p := as[Pair[A, B]]("map-pair", elem)
			next.ProcessIncremental(fn(p.First, p.Second))
		})
	})
}

// SelectFirst forwards the first component of each pair.
func SelectFirst[A, B any]() Stage {
	return MapPair(func(a A, _ B) A { return a })
}

// SelectSecond forwards the second component of each pair.
func SelectSecond[A, B any]() Stage {
	return MapPair(func(_ A, b B) B { return b })
}

// Swap exchanges the components of each pair.
func Swap[A, B any]() Stage {
	return MapPair(func(a A, b B) Pair[B, A] { return MakePair(b, a) })
}

type chunkProcessor[T any] struct {
	size  int
	chunk []T
}

func (p *chunkProcessor[T]) ProcessIncremental(elem any, next Next) {
	p.chunk = append(p.chunk, as[T]("chunk", elem))
	if len(p.chunk) == p.size {
		next.ProcessIncremental(p.chunk)
		p.chunk = make([]T, 0, p.size)
	}
}

func (p *chunkProcessor[T]) End(next Next) {
	if len(p.chunk) > 0 {
		next.ProcessIncremental(p.chunk)
		p.chunk = nil
	}
}

// Chunk groups consecutive elements into slices of size elements. The last one may be shorter.
func Chunk[T any](size int) Stage {
	stg := &stage{
		info: incrementalInfo[T, []T]("chunk", model.ReshapeFamily),
		create: func() Processor {
			return &chunkProcessor[T]{size: size, chunk: make([]T, 0, max(size, 0))}
		},
	}
	if size <= 0 {
		stg.err = ErrChunkSize
	}

	return stg
}

// Flatten forwards the values of each slice element one by one.
func Flatten[T any]() Stage {
	return FlatMap(func(s []T) []T { return s })
}

var _ Ender = (*chunkProcessor[int])(nil)
