package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-chain/pkg/pipeline/measure"
	"github.com/askiada/go-chain/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m     measure.Measure
	total time.Duration
}

func (pd *pipelineDrawer) New() error {
	err := pd.Reset()
	if err != nil {
		return errors.Wrap(err, "unable to reset drawer")
	}
	err = pd.AddStage(model.StartStage.Label())
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}
	err = pd.AddStage(model.EndStage.Label())
	if err != nil {
		return errors.Wrap(err, "unable to add end stage to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareSource(*model.StageInfo) error {
	return nil
}

func (pd *pipelineDrawer) PrepareStage(parentStage, stage *model.StageInfo) error {
	err := pd.AddStage(stage.Label())
	if err != nil {
		return err
	}

	return pd.AddLink(parentStage.Label(), stage.Label(), parentStage.Output, stage.Adapted)
}

func (pd *pipelineDrawer) OnStageInput(_, _ *model.StageInfo, _ time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) OnResult(lastStage *model.StageInfo, totalDuration time.Duration) error {
	pd.total = totalDuration

	return pd.AddLink(lastStage.Label(), model.EndStage.Label(), lastStage.Output, false)
}

func (pd *pipelineDrawer) Finish() error {
	if pd.m != nil {
		err := pd.SetTotalTime(model.EndStage.Label(), pd.total)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}
		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer returns a pipeline option drawing every chain the pipeline runs.
// The labels of the stages carry the figures of measure when it is not nil.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
