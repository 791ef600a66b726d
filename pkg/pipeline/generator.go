package pipeline

import (
	"iter"
	"reflect"
)

// Integer is the set of integer types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Number is the set of types Sum can add.
type Number interface {
	Integer | ~float32 | ~float64
}

// Generator is a lazy source driven by repeated invocations of its body.
//
// Every invocation of the body calls emit at most once with the next value and advances
// the state captured by the body. An invocation that does not call emit ends the sequence.
// Checking bounds is the body's job. A generator is consumed by the first chain iterating it.
type Generator[T any] struct {
	body     func(emit func(T))
	finalize func()

	advances  int
	exhausted bool
	finalized bool
	consumed  bool
}

// GeneratorOption configures a generator.
type GeneratorOption[T any] func(g *Generator[T])

// WithFinalize registers fn to run once when the iteration of the generator stops,
// either because it is exhausted or because the chain does not need more values.
func WithFinalize[T any](fn func()) GeneratorOption[T] {
	return func(g *Generator[T]) {
		g.finalize = fn
	}
}

// NewGenerator creates a generator from its body.
func NewGenerator[T any](body func(emit func(T)), opts ...GeneratorOption[T]) *Generator[T] {
	g := &Generator[T]{body: body}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Advance invokes the body once. It returns false once the body stops emitting.
// Emits past the first one in a single invocation are ignored.
func (g *Generator[T]) Advance() (T, bool) {
	var (
		value   T
		emitted bool
	)
	if g.exhausted {
		return value, false
	}
	g.advances++
	g.body(func(v T) {
		if emitted {
			return
		}
		value = v
		emitted = true
	})
	if !emitted {
		g.exhausted = true
		g.finish()
	}

	return value, emitted
}

// Exhausted reports whether the body stopped emitting.
func (g *Generator[T]) Exhausted() bool {
	return g.exhausted
}

// Advances returns how many times the body was invoked.
func (g *Generator[T]) Advances() int {
	return g.advances
}

// Consumed reports whether a chain already iterated the generator.
func (g *Generator[T]) Consumed() bool {
	return g.consumed
}

func (g *Generator[T]) Range(yield func(any) bool) {
	g.consumed = true
	defer g.finish()
	for {
		v, ok := g.Advance()
		if !ok || !yield(v) {
			return
		}
	}
}

func (g *Generator[T]) ElemType() reflect.Type {
	return typeOf[T]()
}

func (g *Generator[T]) finish() {
	if g.finalized {
		return
	}
	g.finalized = true
	if g.finalize != nil {
		g.finalize()
	}
}

// Counter returns an unbounded generator of start, start+1, ...
func Counter[T Integer](start T) *Generator[T] {
	curr := start

	return NewGenerator(func(emit func(T)) {
		emit(curr)
		curr++
	})
}

// Interval returns a generator of the values in [begin, end).
func Interval[T Integer](begin, end T) *Generator[T] {
	return NewGenerator(func(emit func(T)) {
		if begin != end {
			emit(begin)
			begin++
		}
	})
}

type consumable interface {
	Consumed() bool
}

type bounded struct {
	src   Sequence
	limit int
}

// TakeFrom returns a sequence of at most n values of src.
// src is never advanced more than n times.
func TakeFrom(src Sequence, n int) Sequence {
	return &bounded{src: src, limit: n}
}

func (b *bounded) Range(yield func(any) bool) {
	if b.limit <= 0 {
		return
	}
	taken := 0
	b.src.Range(func(v any) bool {
		taken++
		if !yield(v) {
			return false
		}

		return taken < b.limit
	})
}

func (b *bounded) ElemType() reflect.Type {
	return b.src.ElemType()
}

func (b *bounded) Consumed() bool {
	c, ok := b.src.(consumable)

	return ok && c.Consumed()
}

type seqSource[T any] struct {
	seq iter.Seq[T]
}

// FromSeq adapts an iterator to a sequence.
func FromSeq[T any](seq iter.Seq[T]) Sequence {
	return &seqSource[T]{seq: seq}
}

func (s *seqSource[T]) Range(yield func(any) bool) {
	for v := range s.seq {
		if !yield(v) {
			return
		}
	}
}

func (s *seqSource[T]) ElemType() reflect.Type {
	return typeOf[T]()
}

var (
	_ Sequence   = (*Generator[int])(nil)
	_ Sequence   = (*bounded)(nil)
	_ Sequence   = (*seqSource[int])(nil)
	_ consumable = (*Generator[int])(nil)
)
