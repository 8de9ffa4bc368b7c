package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-flowpilot/internal/imports"
)

// AllCategories writes every category when passed to WriteCategoryToFile.
const AllCategories = "all"

// ScriptExtension is the extension of generated scripts.
const ScriptExtension = ".py"

const scriptTemplate = `# This script was generated by FlowPilot
# Imports
{{range .Imports}}try:
    {{.}}
except ImportError as e:
    print(f'Failed to import: {e}')
{{end}}# Functions
{{range .Functions}}{{.}}

{{end}}`

var script = template.Must(template.New("script").Parse(scriptTemplate))

type scriptData struct {
	Imports   []string
	Functions []string
}

// RenderScript renders a generated script from import statements and function sources.
func RenderScript(importList, sources []string) (string, error) {
	data := scriptData{
		Imports:   importList,
		Functions: make([]string, 0, len(sources)),
	}
	for _, src := range sources {
		data.Functions = append(data.Functions, strings.TrimRight(src, "\r\n"))
	}

	var b strings.Builder

	err := script.Execute(&b, data)
	if err != nil {
		return "", errors.Wrap(err, "unable to render script")
	}

	return b.String(), nil
}

type writeConfig struct {
	scanRoot string
	imports  []string
	scanOpts []imports.Option
	preset   bool
}

// WriteOption configures WriteCategoryToFile.
type WriteOption func(c *writeConfig)

// ScanRoot sets the directory scraped for import statements. Defaults to ".".
func ScanRoot(dir string) WriteOption {
	return func(c *writeConfig) {
		c.scanRoot = dir
	}
}

// AnchoredImports only keeps import statements found at the start of a line.
func AnchoredImports() WriteOption {
	return func(c *writeConfig) {
		c.scanOpts = append(c.scanOpts, imports.Anchored())
	}
}

// ScanWorkers sets how many files are read concurrently while scanning.
func ScanWorkers(n int) WriteOption {
	return func(c *writeConfig) {
		c.scanOpts = append(c.scanOpts, imports.Workers(n))
	}
}

// Imports uses the given statements instead of scanning the project tree.
func Imports(list []string) WriteOption {
	return func(c *writeConfig) {
		c.imports = list
		c.preset = true
	}
}

// ScriptPath returns the path of the script generated for a category.
func ScriptPath(outputDir, categoryName string) string {
	return filepath.Join(outputDir, categoryName+ScriptExtension)
}

// WriteCategoryToFile writes the functions of a category, or of every category
// for AllCategories, to <outputDir>/<category>.py. An unknown category is
// reported and skipped. It returns the paths written.
func (r *Registry) WriteCategoryToFile(ctx context.Context, categoryName, outputDir string, opts ...WriteOption) ([]string, error) {
	cfg := &writeConfig{scanRoot: "."}
	for _, opt := range opts {
		opt(cfg)
	}

	var names []string

	switch {
	case categoryName == AllCategories:
		names = r.Categories()
	case r.IsValidCategory(categoryName):
		names = []string{categoryName}
	default:
		r.logger.Info("category not found", zap.String("category", categoryName))

		return nil, notFound(r.report, categoryName)
	}

	importList := cfg.imports
	if !cfg.preset {
		var err error

		scanOpts := append([]imports.Option{imports.Logger(r.logger)}, cfg.scanOpts...)

		importList, err = imports.Scan(ctx, cfg.scanRoot, scanOpts...)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to scan imports under %s", cfg.scanRoot)
		}
	}

	err := os.MkdirAll(outputDir, 0o755)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create output directory %s", outputDir)
	}

	written := make([]string, 0, len(names))

	for _, name := range names {
		entries := r.GetFunctionsByCategory(name)

		sources := make([]string, 0, len(entries))
		for _, entry := range entries {
			sources = append(sources, entry.StrippedSource())
		}

		content, err := RenderScript(importList, sources)
		if err != nil {
			return written, errors.Wrapf(err, "unable to render category %s", name)
		}

		path := ScriptPath(outputDir, name)

		err = os.WriteFile(path, []byte(content), 0o644) //nolint:gosec // generated scripts are meant to be read
		if err != nil {
			return written, errors.Wrapf(err, "unable to write %s", path)
		}

		r.logger.Info("category written",
			zap.String("category", name),
			zap.String("path", path),
			zap.Int("functions", len(entries)),
			zap.Int("imports", len(importList)),
		)

		written = append(written, path)
	}

	return written, nil
}
