package measure

import (
	"time"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStage.Label())
	pm.AddMetric(model.EndStage.Label())

	return nil
}

func (pm *pipelineMeasure) PrepareSource(source *model.StageInfo) error {
	pm.AddMetric(source.Label())

	return nil
}

func (pm *pipelineMeasure) PrepareStage(_, stage *model.StageInfo) error {
	pm.AddMetric(stage.Label())

	return nil
}

func (pm *pipelineMeasure) OnStageInput(parentStage, stage *model.StageInfo, elapsed time.Duration) error {
	mt := pm.AddMetric(stage.Label())
	mt.AddDuration(elapsed)
	mt.AddInput(parentStage.Label())

	return nil
}

func (pm *pipelineMeasure) OnResult(lastStage *model.StageInfo, totalDuration time.Duration) error {
	mt := pm.AddMetric(model.EndStage.Label())
	mt.AddInput(lastStage.Label())
	mt.SetTotalDuration(totalDuration)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

// PipelineMeasure returns a pipeline option recording the inputs of every stage in measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
