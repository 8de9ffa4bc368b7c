package registry

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// EntryReport is the displayed form of a function.
type EntryReport struct {
	Comment string `json:"comment"`
	Source  string `json:"source,omitempty"`
}

// Report holds the displayed functions, keyed by category then function name.
type Report map[string]map[string]EntryReport

// Report builds the display data for one category, or every category when
// categoryName is empty. It returns false for an unknown category.
func (r *Registry) Report(categoryName string, includeSource bool) (Report, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.order
	if categoryName != "" {
		if _, ok := r.categories[categoryName]; !ok {
			return nil, false
		}

		names = []string{categoryName}
	}

	report := make(Report, len(names))

	for _, name := range names {
		functions := make(map[string]EntryReport)

		for _, entry := range r.categories[name].list() {
			er := EntryReport{Comment: entry.DisplayComment()}
			if includeSource {
				er.Source = entry.StrippedSource()
			}

			functions[entry.Name] = er
		}

		report[name] = functions
	}

	return report, true
}

func notFound(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, "Category '%s' not found.\n", name)

	return errors.Wrap(err, "unable to report missing category")
}

// DisplayFunctions writes the report as indented JSON. An unknown category is
// reported as not found and nothing else is written.
func (r *Registry) DisplayFunctions(w io.Writer, categoryName string, includeSource bool) error {
	report, ok := r.Report(categoryName, includeSource)
	if !ok {
		return notFound(w, categoryName)
	}

	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return errors.Wrap(err, "unable to encode functions")
	}

	_, err = fmt.Fprintln(w, string(data))

	return errors.Wrap(err, "unable to display functions")
}
