package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-flowpilot/pkg/pipeline/measure"
	"github.com/askiada/go-flowpilot/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	last      *model.StepInfo
	endLinked bool
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStep(model.StartStep.ID(), "")
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}

	err = pd.AddStep(model.EndStep.ID(), "")
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	pd.last = model.StartStep

	return nil
}

func (pd *pipelineDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	if pd.endLinked {
		err := pd.RemoveLink(pd.last.ID(), model.EndStep.ID())
		if err != nil {
			return err
		}

		pd.endLinked = false
	}

	err := pd.AddStep(step.ID(), step.Category)
	if err != nil {
		return err
	}

	err = pd.AddLink(parentStep.ID(), step.ID())
	if err != nil {
		return err
	}

	pd.last = step

	return nil
}

func (pd *pipelineDrawer) OnStepOutput(*model.StepInfo, time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) Finish(totalDuration time.Duration) error {
	if !pd.endLinked {
		err := pd.AddLink(pd.last.ID(), model.EndStep.ID())
		if err != nil {
			return errors.Wrap(err, "unable to link end step")
		}

		pd.endLinked = true
	}

	if pd.m != nil {
		err := pd.SetTotalTime(model.EndStep.ID(), totalDuration)
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

// PipelineDrawer draws the pipeline after every successful run. The measure is
// optional and adds durations to the graph.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}

// Render draws a linear pipeline made of steps, labelling the ones that ran with
// their last duration.
func Render(drawer Drawer, steps []model.StepInfo) error {
	pd := &pipelineDrawer{Drawer: drawer}

	err := pd.New()
	if err != nil {
		return err
	}

	parent := model.StartStep

	for i := range steps {
		step := &steps[i]

		err = pd.PrepareStep(parent, step)
		if err != nil {
			return err
		}

		if step.Duration > 0 {
			err = pd.SetTotalTime(step.ID(), step.Duration)
			if err != nil {
				return err
			}
		}

		parent = step
	}

	return pd.Finish(0)
}
