package pipeline

import (
	"go.uber.org/zap"

	"github.com/askiada/go-flowpilot/pkg/pipeline/model"
)

type Option func(p *Pipeline)

// WithLogger sets the logger used to trace runs.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithFeatures attaches pipeline features such as a drawer or a measure.
func WithFeatures(opts ...model.PipelineOption) Option {
	return func(p *Pipeline) {
		p.opts = append(p.opts, opts...)
	}
}

type StepOption func(s *Step)

// Args records positional arguments passed after the chained value.
func Args(args ...any) StepOption {
	return func(s *Step) {
		s.Args = append(s.Args, args...)
	}
}

// Kwargs records keyword arguments, passed as a trailing map[string]any.
func Kwargs(kwargs map[string]any) StepOption {
	return func(s *Step) {
		if s.Kwargs == nil {
			s.Kwargs = make(map[string]any, len(kwargs))
		}

		for k, v := range kwargs {
			s.Kwargs[k] = v
		}
	}
}

// Name overrides the displayed step name.
func Name(name string) StepOption {
	return func(s *Step) {
		s.Name = name
	}
}
