package measure

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-flowpilot/pkg/pipeline/model"
)

var ErrUnknownStep = errors.New("step is not measured")

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStep.ID())
	pm.AddMetric(model.EndStep.ID())

	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.ID())

	return nil
}

func (pm *pipelineMeasure) OnStepOutput(step *model.StepInfo, computationDuration time.Duration) error {
	mt := pm.GetMetric(step.ID())
	if mt == nil {
		return errors.Wrap(ErrUnknownStep, step.ID())
	}

	mt.AddDuration(computationDuration)

	return nil
}

func (pm *pipelineMeasure) Finish(totalDuration time.Duration) error {
	pm.GetMetric(model.EndStep.ID()).SetTotalDuration(totalDuration)

	return nil
}

// PipelineMeasure records step durations into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
