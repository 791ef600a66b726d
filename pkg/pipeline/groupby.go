package pipeline

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/askiada/go-chain/internal/store"
	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// Groups maps keys to the results of their sub-pipelines, in the order keys were first seen.
type Groups[K comparable, V any] struct {
	entries *store.Ordered[K, V]
}

// NewGroups creates an empty mapping.
func NewGroups[K comparable, V any]() *Groups[K, V] {
	return &Groups[K, V]{entries: store.NewOrdered[K, V]()}
}

// Len returns the number of groups.
func (g *Groups[K, V]) Len() int {
	return g.entries.Len()
}

// Keys returns the keys in first-seen order.
func (g *Groups[K, V]) Keys() []K {
	return g.entries.Keys()
}

// Get returns the result of the group k.
func (g *Groups[K, V]) Get(k K) (V, bool) {
	return g.entries.Get(k)
}

// All iterates over the groups in first-seen order.
func (g *Groups[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		g.entries.Range(yield)
	}
}

// Range feeds the groups as Pair[K, V] elements to Incremental stages.
func (g *Groups[K, V]) Range(yield func(any) bool) {
	g.entries.Range(func(k K, v V) bool {
		return yield(MakePair(k, v))
	})
}

func (g *Groups[K, V]) Clone() any {
	return &Groups[K, V]{entries: g.entries.Clone(func(v V) V {
		cv, _ := clone(v).(V)

		return cv
	})}
}

func (g *Groups[K, V]) set(k K, v V) {
	g.entries.Set(k, v)
}

type groupStage[T any, K comparable, V any] struct {
	info model.StageInfo
	key  func(T) K
	sub  *plan
	err  error
	emit func(groups *Groups[K, V], next Next)
}

func newGroupStage[T any, K comparable, V any](info model.StageInfo, key func(T) K, sub []any) *groupStage[T, K, V] {
	stg := &groupStage[T, K, V]{info: info, key: key}
	if len(sub) == 0 {
		sub = []any{To[T]()}
	}
	stg.sub, stg.err = newPlan(flatten(sub), model.Incremental, typeOf[T]())
	if stg.err == nil {
		stg.err = checkResultType(stg.sub, typeOf[V]())
	}
	if stg.err != nil {
		stg.err = errors.Wrapf(stg.err, "%s sub-pipeline", info.Name)
	}

	return stg
}

// GroupBy partitions the elements by key and feeds each group to its own instance of sub.
// It ends with the *Groups[K, V] of the group results. Groups follow the order in which
// keys were first seen and elements keep their arrival order within a group.
// Without sub, each group collects its elements, and V must be []T.
func GroupBy[T any, K comparable, V any](key func(T) K, sub ...any) Stage {
	stg := newGroupStage[T, K, V](accumulateInfo[T, *Groups[K, V]]("group-by", model.HigherOrderFamily), key, sub)
	stg.emit = func(groups *Groups[K, V], next Next) {
		next.ProcessComplete(Owned(groups))
	}

	return stg
}

// MapGroupBy partitions the elements like GroupBy and, once the input is exhausted,
// forwards fn(key, result) for each group in first-seen order.
func MapGroupBy[T any, K comparable, V, O any](key func(T) K, fn func(K, V) O, sub ...any) Stage {
	stg := newGroupStage[T, K, V](incrementalInfo[T, O]("map-group-by", model.HigherOrderFamily), key, sub)
	stg.emit = func(groups *Groups[K, V], next Next) {
		groups.entries.Range(func(k K, v V) bool {
			next.ProcessIncremental(fn(k, v))

			return !next.Done()
		})
	}

	return stg
}

func (s *groupStage[T, K, V]) Describe() model.StageInfo {
	return s.info
}

func (s *groupStage[T, K, V]) Instantiate() Processor {
	return &groupProcessor[T, K, V]{stage: s, chains: store.NewOrdered[K, *chain]()}
}

func (s *groupStage[T, K, V]) Validate() error {
	return s.err
}

type groupProcessor[T any, K comparable, V any] struct {
	stage  *groupStage[T, K, V]
	chains *store.Ordered[K, *chain]
	run    *run
}

func (p *groupProcessor[T, K, V]) bindChain(r *run) error {
	p.run = r

	return nil
}

func (p *groupProcessor[T, K, V]) ProcessIncremental(elem any, _ Next) {
	k := p.stage.key(as[T](p.stage.info.Name, elem))
	sub, ok := p.chains.Get(k)
	if !ok {
		var err error
		sub, err = p.stage.sub.instantiate(p.run, false)
		if err != nil {
			p.run.fail(errors.Wrapf(err, "%s group %v", p.stage.info.Name, k))

			return
		}
		p.chains.Set(k, sub)
	}
	if !sub.head().Done() {
		sub.head().ProcessIncremental(elem)
	}
}

func (p *groupProcessor[T, K, V]) End(next Next) {
	groups := NewGroups[K, V]()
	var err error
	p.chains.Range(func(k K, sub *chain) bool {
		sub.head().End()
		var res any
		res, err = sub.result()
		if err != nil {
			err = errors.Wrapf(err, "%s group %v", p.stage.info.Name, k)

			return false
		}
		groups.set(k, as[V](p.stage.info.Name, res))

		return true
	})
	if err != nil {
		p.run.fail(err)

		return
	}
	p.stage.emit(groups, next)
}

var (
	_ Ranger      = (*Groups[int, int])(nil)
	_ Cloner      = (*Groups[int, int])(nil)
	_ Stage       = (*groupStage[int, int, int])(nil)
	_ chainBinder = (*groupProcessor[int, int, int])(nil)
	_ Ender       = (*groupProcessor[int, int, int])(nil)
)
