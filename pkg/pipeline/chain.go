package pipeline

import (
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// tailAbsorber is implemented by stages that take over the rest of the chain as a sub-pipeline.
type tailAbsorber interface {
	absorb(rest []any) (Stage, error)
}

// inputTyped is implemented by stages checking their sub-pipelines against the type they receive.
type inputTyped interface {
	withInput(in reflect.Type) (Stage, error)
}

// chainBinder is implemented by processors driving sub-chains of their own.
type chainBinder interface {
	bindChain(r *run) error
}

// plan is a validated list of stages. It holds no per-call state and can be instantiated many times.
type plan struct {
	stages []Stage
	infos  []model.StageInfo
}

// newPlan checks the items in order, tracking the running style and element type.
// start is the style of whatever feeds the first stage, in its type when known.
func newPlan(items []any, start model.Style, in reflect.Type) (*plan, error) {
	pl := &plan{}
	running, curr := start, in
	for i := 0; i < len(items); i++ {
		item := items[i]
		if isSource(item) {
			return nil, errors.Wrapf(ErrSourcePosition, "item %d", i)
		}
		stg, ok := item.(Stage)
		if !ok {
			return nil, errors.Wrapf(ErrNotAStage, "item %d has type %T", i, item)
		}
		if abs, ok := stg.(tailAbsorber); ok {
			var err error
			stg, err = abs.absorb(items[i+1:])
			if err != nil {
				return nil, errors.Wrapf(err, "stage %d", i)
			}
			items = items[:i+1]
		}
		if val, ok := stg.(Validator); ok {
			if err := val.Validate(); err != nil {
				return nil, errors.Wrapf(err, "stage %d", i)
			}
		}

		info := stg.Describe()
		info.Position = i
		if !info.Input.Accepts(running) {
			return nil, errors.Wrapf(ErrStyleMismatch, "stage %s: %s input cannot be fed by a %s output", info.Label(), info.Input, running)
		}
		info.Adapted = info.Input == model.Incremental && running == model.Complete
		if err := checkElementType(curr, &info); err != nil {
			return nil, err
		}
		if typed, ok := stg.(inputTyped); ok {
			var err error
			stg, err = typed.withInput(inputType(curr, &info))
			if err != nil {
				return nil, errors.Wrapf(err, "stage %s", info.Label())
			}
		}

		pl.stages = append(pl.stages, stg)
		pl.infos = append(pl.infos, info)
		running, curr = info.Output, info.Out
	}
	if running != model.Complete {
		last := "source"
		if n := len(pl.infos); n > 0 {
			last = pl.infos[n-1].Label()
		}

		return nil, errors.Wrapf(ErrNotComplete, "%s has a %s output", last, running)
	}

	return pl, nil
}

func checkElementType(have reflect.Type, info *model.StageInfo) error {
	if info.Adapted && have != nil && have.Kind() != reflect.Interface && !iterableType(have) {
		return errors.Wrapf(ErrNotIterable, "stage %s cannot iterate a %s", info.Label(), have)
	}
	have = inputType(have, info)
	want := info.In
	if have == nil || want == nil || have.Kind() == reflect.Interface {
		return nil
	}
	if !have.AssignableTo(want) {
		return errors.Wrapf(ErrElementType, "stage %s expects %s, receives %s", info.Label(), want, have)
	}

	return nil
}

// inputType returns the type a stage receives when fed by an output of type have.
func inputType(have reflect.Type, info *model.StageInfo) reflect.Type {
	if info.Adapted {
		return elemTypeOf(have)
	}

	return have
}

// checkResultType checks that a sub-plan ends with a want, when both types are known.
func checkResultType(pl *plan, want reflect.Type) error {
	if len(pl.infos) == 0 {
		return nil
	}
	last := &pl.infos[len(pl.infos)-1]
	have := last.Out
	if have == nil || want == nil || have.Kind() == reflect.Interface {
		return nil
	}
	if !have.AssignableTo(want) {
		return errors.Wrapf(ErrElementType, "stage %s ends with %s, expected %s", last.Label(), have, want)
	}

	return nil
}

func (p *plan) String() string {
	labels := make([]string, len(p.infos))
	for i := range p.infos {
		labels[i] = p.infos[i].Label()
	}

	return strings.Join(labels, " -> ")
}

// chain is a plan instantiated for one Apply call.
type chain struct {
	links []*link
	sink  *sink
	run   *run
}

// instantiate creates fresh processors and wires them back to front.
// Hooks are only notified by observed chains.
func (p *plan) instantiate(r *run, observed bool) (*chain, error) {
	snk := &sink{run: r, observed: observed}
	c := &chain{links: make([]*link, len(p.stages)), sink: snk, run: r}

	var next Next = snk
	for i := len(p.stages) - 1; i >= 0; i-- {
		parent := model.StartStage
		if i > 0 {
			parent = &p.infos[i-1]
		}
		lnk, err := newLink(p.stages[i].Instantiate(), &p.infos[i], parent, next, r)
		if err != nil {
			return nil, err
		}
		lnk.observed = observed
		c.links[i] = lnk
		next = lnk
	}
	if n := len(p.infos); n > 0 {
		snk.last = &p.infos[n-1]
	} else {
		snk.last = model.StartStage
	}

	return c, nil
}

// head returns what the source, or the owner of a sub-chain, pushes to.
func (c *chain) head() Next {
	if len(c.links) == 0 {
		return c.sink
	}

	return c.links[0]
}

// result returns the value the sink received, detached from any caller storage.
func (c *chain) result() (any, error) {
	if c.run.err != nil {
		return nil, c.run.err
	}
	if !c.sink.set {
		return nil, errors.Wrapf(ErrNoResult, "after %s", c.sink.last.Label())
	}
	agg := c.sink.result
	if seq, ok := agg.Value.(Sequence); ok {
		agg = Owned(c.run.materialize(seq))
		if c.run.err != nil {
			return nil, c.run.err
		}
	}

	return agg.Detach(), nil
}

type link struct {
	info     *model.StageInfo
	parent   *model.StageInfo
	observed bool
	next     Next
	run      *run

	inc   IncrementalProcessor
	cmp   CompleteProcessor
	ender Ender
	doner Doner
}

func newLink(proc Processor, info, parent *model.StageInfo, next Next, r *run) (*link, error) {
	lnk := &link{info: info, parent: parent, next: next, run: r}
	lnk.inc, _ = proc.(IncrementalProcessor)
	lnk.cmp, _ = proc.(CompleteProcessor)
	lnk.ender, _ = proc.(Ender)
	lnk.doner, _ = proc.(Doner)

	switch {
	case info.Input == model.Incremental && lnk.inc == nil:
		return nil, errors.Wrapf(ErrMissingEntryPoint, "stage %s has no ProcessIncremental", info.Label())
	case info.Input == model.Complete && lnk.cmp == nil:
		return nil, errors.Wrapf(ErrMissingEntryPoint, "stage %s has no ProcessComplete", info.Label())
	case info.Input == model.Incremental && info.Output == model.Complete && lnk.ender == nil:
		return nil, errors.Wrapf(ErrMissingEntryPoint, "stage %s accumulates but has no End", info.Label())
	}
	if binder, ok := proc.(chainBinder); ok {
		if err := binder.bindChain(r); err != nil {
			return nil, errors.Wrapf(err, "stage %s", info.Label())
		}
	}

	return lnk, nil
}

func (l *link) ProcessIncremental(elem any) {
	if l.run.err != nil {
		return
	}
	if l.inc == nil {
		l.run.fail(errors.Wrapf(ErrUnexpectedElement, "stage %s", l.info.Label()))

		return
	}
	if !l.observed || len(l.run.hooks) == 0 {
		l.inc.ProcessIncremental(elem, l.next)

		return
	}
	start := time.Now()
	l.inc.ProcessIncremental(elem, l.next)
	l.run.onStageInput(l.parent, l.info, time.Since(start))
}

func (l *link) ProcessComplete(agg Aggregate) {
	if l.run.err != nil {
		return
	}
	if l.info.Input == model.Incremental {
		l.iterate(agg)

		return
	}
	if seq, ok := agg.Value.(Sequence); ok {
		agg = Owned(l.run.materialize(seq))
		if l.run.err != nil {
			return
		}
	}
	if !l.observed || len(l.run.hooks) == 0 {
		l.cmp.ProcessComplete(agg, l.next)

		return
	}
	start := time.Now()
	l.cmp.ProcessComplete(agg, l.next)
	l.run.onStageInput(l.parent, l.info, time.Since(start))
}

// iterate feeds the elements of agg one by one, stopping as soon as the chain is done.
// Elements of aliased aggregates are copied so that no stage can reach caller storage.
func (l *link) iterate(agg Aggregate) {
	if l.Done() {
		l.End()

		return
	}
	stopped := false
	aliased := agg.Ownership.Aliased()
	l.run.iterate(agg.Value, func(elem any) bool {
		if aliased {
			elem = clone(elem)
		}
		l.ProcessIncremental(elem)
		if l.Done() {
			stopped = true

			return false
		}

		return true
	})
	if stopped && l.run.err == nil {
		l.run.logger.Debug().Str("stage", l.info.Label()).Msg("early termination requested")
	}
	l.End()
}

func (l *link) End() {
	if l.run.err != nil {
		return
	}
	if l.ender != nil {
		l.ender.End(l.next)
	}
	if l.info.Output == model.Incremental {
		l.next.End()
	}
}

func (l *link) Done() bool {
	if l.run.err != nil {
		return true
	}
	if l.doner != nil && l.doner.Done() {
		return true
	}

	return l.next.Done()
}

var _ Next = (*link)(nil)
