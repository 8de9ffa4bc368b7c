package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrResolverMustBeSet = errors.New("category resolver must be set")
	ErrNotRegistered     = errors.New("function is not registered in any category")
	ErrCategoryMismatch  = errors.New("function does not belong to category")
	ErrBadSignature      = errors.New("unsupported function signature")
	ErrBadArguments      = errors.New("arguments do not match the function signature")
	ErrStepPanicked      = errors.New("step panicked")
)
