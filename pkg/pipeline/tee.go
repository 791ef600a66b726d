package pipeline

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

type teeStage struct {
	subs  [][]any
	plans []*plan
	err   error
}

// Tee sends every element to each sub-pipeline and ends with the Tuple of their results,
// in the order the sub-pipelines are given. Each sub-pipeline is a stage or a Group
// taking elements one by one and ending Complete.
func Tee(subs ...any) Stage {
	tee := &teeStage{}
	if len(subs) == 0 {
		tee.err = ErrTeeMustHaveSubPipe

		return tee
	}
	for _, sub := range subs {
		tee.subs = append(tee.subs, flatten([]any{sub}))
	}
	tee.plans, tee.err = planSubs(tee.subs, nil)

	return tee
}

func planSubs(subs [][]any, in reflect.Type) ([]*plan, error) {
	plans := make([]*plan, len(subs))
	for i, sub := range subs {
		pl, err := newPlan(sub, model.Incremental, in)
		if err != nil {
			return nil, errors.Wrapf(err, "tee sub-pipeline %d", i)
		}
		plans[i] = pl
	}

	return plans, nil
}

// withInput plans the sub-pipelines again, now that the element type is known.
func (t *teeStage) withInput(in reflect.Type) (Stage, error) {
	if in == nil || in.Kind() == reflect.Interface {
		return t, nil
	}
	plans, err := planSubs(t.subs, in)
	if err != nil {
		return nil, err
	}

	return &teeStage{subs: t.subs, plans: plans}, nil
}

func (t *teeStage) Describe() model.StageInfo {
	return model.StageInfo{
		Name:   "tee",
		Family: model.HigherOrderFamily,
		Input:  model.Incremental,
		Output: model.Complete,
		Out:    typeOf[Tuple](),
	}
}

func (t *teeStage) Instantiate() Processor {
	return &teeProcessor{plans: t.plans}
}

func (t *teeStage) Validate() error {
	return t.err
}

type teeProcessor struct {
	plans []*plan
	subs  []*chain
	run   *run
}

func (p *teeProcessor) bindChain(r *run) error {
	p.run = r
	p.subs = make([]*chain, len(p.plans))
	for i, pl := range p.plans {
		sub, err := pl.instantiate(r, false)
		if err != nil {
			return errors.Wrapf(err, "tee sub-pipeline %d", i)
		}
		p.subs[i] = sub
	}

	return nil
}

func (p *teeProcessor) ProcessIncremental(elem any, _ Next) {
	for _, sub := range p.subs {
		if !sub.head().Done() {
			sub.head().ProcessIncremental(elem)
		}
	}
}

// Done is true once no sub-pipeline wants more elements.
func (p *teeProcessor) Done() bool {
	for _, sub := range p.subs {
		if !sub.head().Done() {
			return false
		}
	}

	return true
}

func (p *teeProcessor) End(next Next) {
	out := make(Tuple, len(p.subs))
	for i, sub := range p.subs {
		sub.head().End()
		res, err := sub.result()
		if err != nil {
			p.run.fail(errors.Wrapf(err, "tee sub-pipeline %d", i))

			return
		}
		out[i] = res
	}
	next.ProcessComplete(Owned(out))
}

var (
	_ Stage       = (*teeStage)(nil)
	_ Validator   = (*teeStage)(nil)
	_ inputTyped  = (*teeStage)(nil)
	_ chainBinder = (*teeProcessor)(nil)
	_ Ender       = (*teeProcessor)(nil)
	_ Doner       = (*teeProcessor)(nil)
)
