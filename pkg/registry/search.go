package registry

import (
	"regexp"

	"github.com/pkg/errors"
)

// Search fields accepted by SearchFunctions. An empty field matches any of them.
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldComment  = "comment"
)

// SearchResult is one match of SearchFunctions.
type SearchResult struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Comment  string `json:"comment"`
}

func compileQuery(query string, caseSensitive bool) *regexp.Regexp {
	prefix := "(?i)"
	if caseSensitive {
		prefix = ""
	}

	re, err := regexp.Compile(prefix + query)
	if err != nil {
		return regexp.MustCompile(prefix + regexp.QuoteMeta(query))
	}

	return re
}

// SearchFunctions looks for query in the name, category or comment of every
// registered function. The query is a regular expression searched anywhere in the
// field; a query that does not compile is searched literally.
func (r *Registry) SearchFunctions(query, field string, caseSensitive bool) ([]SearchResult, error) {
	switch field {
	case "", FieldName, FieldCategory, FieldComment:
	default:
		return nil, errors.Wrapf(ErrInvalidSearchField, "%q is not one of %s, %s or %s",
			field, FieldName, FieldCategory, FieldComment)
	}

	re := compileQuery(query, caseSensitive)

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []SearchResult{}

	for _, catName := range r.order {
		for _, entry := range r.categories[catName].list() {
			values := map[string]string{
				FieldName:     entry.Name,
				FieldCategory: catName,
				FieldComment:  entry.Comment,
			}

			matched := false
			if field != "" {
				matched = re.MatchString(values[field])
			} else {
				for _, v := range values {
					if re.MatchString(v) {
						matched = true

						break
					}
				}
			}

			if matched {
				results = append(results, SearchResult{
					Name:     entry.Name,
					Category: catName,
					Comment:  entry.Comment,
				})
			}
		}
	}

	return results, nil
}
