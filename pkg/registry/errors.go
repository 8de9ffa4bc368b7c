package registry

import "github.com/pkg/errors"

var (
	ErrInvalidCategory    = errors.New("invalid category")
	ErrNotAFunction       = errors.New("value is not a function")
	ErrInvalidSearchField = errors.New("invalid search field")
)
