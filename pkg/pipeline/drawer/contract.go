// Package drawer renders a pipeline as a Graphviz DOT graph.
package drawer

import (
	"time"

	"github.com/askiada/go-flowpilot/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStep adds a step to the pipeline drawer.
	AddStep(stepName, category string) error
	// AddLink adds a link between parent and child steps.
	AddLink(parentStepName, childStepName string) error
	// RemoveLink removes a link between parent and child steps.
	RemoveLink(parentStepName, childStepName string) error
	// Draw writes the pipeline graph.
	Draw() error
	// SetTotalTime labels a step with a duration.
	SetTotalTime(stepName string, total time.Duration) error
	// AddMeasure labels every measured step with its average duration.
	AddMeasure(measure measure.Measure) error
}
