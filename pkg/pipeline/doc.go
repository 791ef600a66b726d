// Package pipeline composes reusable stages into chains and drives them with a source.
//
// A stage declares how it receives data and how it hands data over. An Incremental stage
// is called once per element, a Complete stage once with the whole aggregate. A chain is
// built and checked by Apply before any element moves:
//
//	sorted, err := pipeline.Apply[[]int](pipeline.Ref(&values),
//		pipeline.Filter(func(v int) bool { return v > 0 }),
//		pipeline.To[int](),
//		pipeline.Sort[int](),
//	)
//
// A Complete output feeding an Incremental input is iterated element by element. The
// reverse requires an accumulating stage such as To, Count or Tee. A chain whose last
// stage is not Complete is rejected with ErrNotComplete.
//
// Data is pushed from the source through the chain on the call stack of Apply, without
// goroutines or channels. A stage can ask its upstream to stop early, which is how Take
// or FirstOf read a bounded prefix of an unbounded Generator.
//
// Sources carry an ownership tag. Ref lends read-only storage, which stages copy before
// writing to it, MutRef lends writable storage, Own and Move hand the value over. Either
// way the result of Apply never aliases the caller's storage.
//
// Stages and groups of stages built with Compose are reusable: every Apply call
// instantiates fresh processors, so the same chain applied twice to equal sources
// returns equal results.
package pipeline
