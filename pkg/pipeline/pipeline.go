package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-flowpilot/pkg/pipeline/drawer"
	"github.com/askiada/go-flowpilot/pkg/pipeline/model"
	"github.com/askiada/go-flowpilot/pkg/registry"
)

// CategoryResolver tells which category a function is tagged with.
type CategoryResolver interface {
	CategoryOf(fn any) (string, bool)
}

// namer is implemented by resolvers that also know registered names.
type namer interface {
	NameOf(fn any) (string, bool)
}

// Pipeline is an ordered list of tagged functions executed one after the other,
// each step receiving the value returned by the previous one.
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	resolver CategoryResolver
	logger   *zap.Logger
	opts     []model.PipelineOption
	steps    []*Step
}

// New creates an empty pipeline validating steps against resolver.
func New(resolver CategoryResolver, opts ...Option) (*Pipeline, error) {
	if resolver == nil {
		return nil, ErrResolverMustBeSet
	}

	pipe := &Pipeline{
		resolver: resolver,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(pipe)
	}

	for _, opt := range pipe.opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

func (p *Pipeline) stepName(fn any) string {
	if n, ok := p.resolver.(namer); ok {
		if name, found := n.NameOf(fn); found {
			return name
		}
	}

	return registry.FuncName(fn)
}

// AddStep appends fn, which must be tagged with category. When a feature fails to
// prepare the step, the step is not appended but features prepared before it keep
// their state.
func (p *Pipeline) AddStep(category string, fn any, opts ...StepOption) error {
	tagged, ok := p.resolver.CategoryOf(fn)
	if !ok {
		return errors.Wrapf(ErrNotRegistered, "%s", registry.FuncName(fn))
	}

	if tagged != category {
		return errors.Wrapf(ErrCategoryMismatch, "%s is tagged %q, not %q", p.stepName(fn), tagged, category)
	}

	step, err := newStep(category, p.stepName(fn), fn, opts...)
	if err != nil {
		return err
	}

	step.info = step.details(len(p.steps) + 1)

	parent := model.StartStep
	if len(p.steps) > 0 {
		parent = p.steps[len(p.steps)-1].info
	}

	for _, opt := range p.opts {
		err := opt.PrepareStep(parent, step.info)
		if err != nil {
			return errors.Wrapf(err, "unable to prepare step %s", step.info.ID())
		}
	}

	p.steps = append(p.steps, step)

	p.logger.Debug("step added",
		zap.Int("index", step.info.Index),
		zap.String("category", category),
		zap.String("function", step.Name),
	)

	return nil
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Execute runs every step in order and returns the value of the last one.
// An empty pipeline returns nil. The first failing step stops the run. Features
// are finished after every successful run, empty ones included.
func (p *Pipeline) Execute(ctx context.Context) (any, error) {
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID))
	start := time.Now()

	logger.Info("pipeline started", zap.Int("steps", len(p.steps)))

	var (
		previous any
		chained  bool
	)

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "step %d (%s) not started", step.info.Index, step.Name)
		}

		values := make([]any, 0, len(step.Args)+2)
		if chained {
			values = append(values, previous)
		}

		values = append(values, step.Args...)
		if len(step.Kwargs) > 0 {
			values = append(values, step.Kwargs)
		}

		logger.Debug("step started", zap.Int("index", step.info.Index), zap.String("function", step.Name))

		stepStart := time.Now()
		out, err := step.call(ctx, values)
		step.info.Duration = time.Since(stepStart)

		if err != nil {
			logger.Error("step failed",
				zap.Int("index", step.info.Index),
				zap.String("function", step.Name),
				zap.Error(err),
			)

			return nil, errors.Wrapf(err, "step %d (%s)", step.info.Index, step.Name)
		}

		logger.Debug("step finished",
			zap.Int("index", step.info.Index),
			zap.String("function", step.Name),
			zap.Duration("duration", step.info.Duration),
		)

		for _, opt := range p.opts {
			err := opt.OnStepOutput(step.info, step.info.Duration)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to report output of step %s", step.info.ID())
			}
		}

		previous, chained = out, step.valueOut
	}

	total := time.Since(start)

	for _, opt := range p.opts {
		err := opt.Finish(total)
		if err != nil {
			return nil, errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	logger.Info("pipeline finished", zap.Duration("duration", total))

	return previous, nil
}

// Steps returns a copy of the step descriptions.
func (p *Pipeline) Steps() []model.StepInfo {
	res := make([]model.StepInfo, 0, len(p.steps))
	for _, step := range p.steps {
		info := *step.info
		info.Args = slices.Clone(step.info.Args)
		info.Kwargs = maps.Clone(step.info.Kwargs)
		res = append(res, info)
	}

	return res
}

// ShowPipelineSteps writes a human readable listing of the steps to w.
func (p *Pipeline) ShowPipelineSteps(w io.Writer) error {
	if len(p.steps) == 0 {
		_, err := fmt.Fprintln(w, "The pipeline is empty.")

		return errors.Wrap(err, "unable to show pipeline")
	}

	_, err := fmt.Fprintln(w, "Pipeline steps:")
	if err != nil {
		return errors.Wrap(err, "unable to show pipeline")
	}

	for _, step := range p.steps {
		_, err = fmt.Fprintln(w, step.info.String())
		if err != nil {
			return errors.Wrap(err, "unable to show pipeline")
		}
	}

	return nil
}

// GetPipelineStepsJSON returns the steps as an indented JSON array.
func (p *Pipeline) GetPipelineStepsJSON() (string, error) {
	data, err := json.MarshalIndent(p.Steps(), "", "    ")
	if err != nil {
		return "", errors.Wrap(err, "unable to encode pipeline steps")
	}

	return string(data), nil
}

// Draw writes the pipeline as a DOT graph to w.
func (p *Pipeline) Draw(w io.Writer) error {
	return drawer.Render(drawer.NewDOTDrawer(w), p.Steps())
}
