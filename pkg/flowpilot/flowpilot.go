package flowpilot

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-flowpilot/pkg/pipeline"
	"github.com/askiada/go-flowpilot/pkg/registry"
)

// FlowPilot ties a project directory to the registry of its functions.
type FlowPilot struct {
	project    *Project
	registry   *registry.Registry
	logger     *zap.Logger
	out        io.Writer
	categories []string
	dir        string
	writeOpts  []registry.WriteOption
}

// New opens the project called name, creating its directory when missing.
func New(name string, opts ...Option) (*FlowPilot, error) {
	fp := &FlowPilot{
		logger:     zap.NewNop(),
		out:        os.Stdout,
		categories: BaseCategories,
	}
	for _, opt := range opts {
		opt(fp)
	}

	project, err := openProject(name, fp.dir)
	if err != nil {
		return nil, err
	}

	fp.project = project
	fp.registry = registry.New(fp.categories,
		registry.WithLogger(fp.logger),
		registry.WithReportWriter(fp.out),
	)

	fp.logger.Debug("project opened", zap.String("project", name), zap.String("dir", project.Dir))

	return fp, nil
}

// Project returns the project the functions belong to.
func (fp *FlowPilot) Project() *Project {
	return fp.project
}

// Registry returns the underlying registry.
func (fp *FlowPilot) Registry() *registry.Registry {
	return fp.registry
}

// CreateNewCategory adds a category. Its shortcut is available right away.
func (fp *FlowPilot) CreateNewCategory(name string) bool {
	return fp.registry.CreateCategory(name)
}

// RegisterFunction returns a decorator tagging functions with an existing category.
func (fp *FlowPilot) RegisterFunction(category, comment string) registry.Decorator {
	return fp.registry.RegisterFunction(category, comment)
}

// IsValidCategory reports whether the category exists.
func (fp *FlowPilot) IsValidCategory(name string) bool {
	return fp.registry.IsValidCategory(name)
}

// CategoryOf returns the category fn is tagged with.
func (fp *FlowPilot) CategoryOf(fn any) (string, bool) {
	return fp.registry.CategoryOf(fn)
}

// NameOf returns the name fn is registered under.
func (fp *FlowPilot) NameOf(fn any) (string, bool) {
	return fp.registry.NameOf(fn)
}

// Custom registers in category, creating it first when it does not exist.
func (fp *FlowPilot) Custom(category, comment string) registry.Decorator {
	if !fp.registry.IsValidCategory(category) {
		fp.registry.CreateCategory(category)
	}

	return fp.registry.RegisterFunction(category, comment)
}

// DisplayFunctions prints the functions of category, or of every category when it
// is empty, as JSON.
func (fp *FlowPilot) DisplayFunctions(category string, includeSource bool) error {
	return fp.registry.DisplayFunctions(fp.out, category, includeSource)
}

// SearchFunctions prints the functions matching query, case insensitively.
func (fp *FlowPilot) SearchFunctions(query, field string) error {
	results, err := fp.registry.SearchFunctions(query, field, false)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		_, err = fmt.Fprintln(fp.out, "No matching functions found.")

		return errors.Wrap(err, "unable to print search results")
	}

	_, err = fmt.Fprintln(fp.out, "Search results:")
	if err != nil {
		return errors.Wrap(err, "unable to print search results")
	}

	for _, res := range results {
		_, err = fmt.Fprintf(fp.out, "Name: %s, Category: %s, Comment: %s\n", res.Name, res.Category, res.Comment)
		if err != nil {
			return errors.Wrap(err, "unable to print search results")
		}
	}

	return nil
}

// WriteCategoryToFile writes category, or every category for registry.AllCategories,
// under outputPath. An empty outputPath writes into the project directory.
func (fp *FlowPilot) WriteCategoryToFile(
	ctx context.Context,
	category, outputPath string,
	opts ...registry.WriteOption,
) ([]string, error) {
	if outputPath == "" {
		outputPath = fp.project.Dir
	}

	all := append(append([]registry.WriteOption(nil), fp.writeOpts...), opts...)

	return fp.registry.WriteCategoryToFile(ctx, category, outputPath, all...)
}

// NewPipeline creates a pipeline validating its steps against the project registry.
func (fp *FlowPilot) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	all := append([]pipeline.Option{pipeline.WithLogger(fp.logger)}, opts...)

	return pipeline.New(fp, all...)
}
