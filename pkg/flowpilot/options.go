package flowpilot

import (
	"io"

	"go.uber.org/zap"

	"github.com/askiada/go-flowpilot/pkg/registry"
)

// BaseCategories are the categories every project starts with.
var BaseCategories = []string{
	DataLoaderCategory,
	PreprocessorCategory,
	ModelTrainingCategory,
	DataVizCategory,
	DataReaderCategory,
	DataTransformerCategory,
	DataWriterCategory,
	TestCategory,
}

type Option func(fp *FlowPilot)

// WithCategories replaces the base categories.
func WithCategories(categories ...string) Option {
	return func(fp *FlowPilot) {
		fp.categories = categories
	}
}

// WithDir sets the project directory. It defaults to the project name.
func WithDir(dir string) Option {
	return func(fp *FlowPilot) {
		fp.dir = dir
	}
}

// WithLogger sets the logger shared by the registry and the pipelines.
func WithLogger(logger *zap.Logger) Option {
	return func(fp *FlowPilot) {
		fp.logger = logger
	}
}

// WithOutput sets where reports and search results are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(fp *FlowPilot) {
		fp.out = w
	}
}

// WithWriteOptions sets default options for WriteCategoryToFile, such as the scan root.
func WithWriteOptions(opts ...registry.WriteOption) Option {
	return func(fp *FlowPilot) {
		fp.writeOpts = append(fp.writeOpts, opts...)
	}
}
