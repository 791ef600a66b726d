package pipeline

import (
	"cmp"
	"slices"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// Sort sorts the whole aggregate in ascending order.
// Read-only sources are copied first, mutable aliases are sorted in place.
func Sort[T cmp.Ordered]() Stage {
	return SortFunc(cmp.Compare[T])
}

// SortFunc sorts the whole aggregate with compare, keeping equal elements in their order.
func SortFunc[T any](compare func(a, b T) int) Stage {
	return inPlace[T]("sort", func(s []T) {
		slices.SortStableFunc(s, compare)
	})
}

// Reverse reverses the order of the whole aggregate.
func Reverse[T any]() Stage {
	return inPlace[T]("reverse", slices.Reverse[[]T])
}

func inPlace[T any](name string, fn func([]T)) Stage {
	return NewStage(completeInfo[[]T, []T](name, model.ReorderFamily), func() Processor {
		return CompleteFunc(func(agg Aggregate, next Next) {
			agg = agg.Mutable()
			s := as[[]T](name, agg.Value)
			fn(s)
			next.ProcessComplete(Aggregate{Value: s, Ownership: agg.Ownership})
		})
	})
}

// Whole forwards fn(aggregate). fn may modify its argument.
func Whole[I, O any](fn func(I) O) Stage {
	return NewStage(completeInfo[I, O]("whole", model.TransformFamily), func() Processor {
		return CompleteFunc(func(agg Aggregate, next Next) {
			agg = agg.Mutable()
			next.ProcessComplete(Aggregate{Value: fn(as[I]("whole", agg.Value)), Ownership: agg.Ownership})
		})
	})
}
