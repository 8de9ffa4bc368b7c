package pipeline

import (
	"context"
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/askiada/go-flowpilot/pkg/pipeline/model"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Step is one function call of a pipeline.
type Step struct {
	Func     any
	Kwargs   map[string]any
	Category string
	Name     string
	Args     []any

	fn      reflect.Value
	withCtx bool
	// valueOut is false for functions returning nothing or only an error.
	valueOut bool
	info     *model.StepInfo
}

func checkSignature(fnType reflect.Type) (bool, error) {
	switch fnType.NumOut() {
	case 0:
		return false, nil
	case 1:
		return fnType.Out(0) != errorType, nil
	case 2:
		if fnType.Out(1) != errorType {
			return false, errors.Wrapf(ErrBadSignature, "%s: second result must be an error", fnType)
		}

		return true, nil
	default:
		return false, errors.Wrapf(ErrBadSignature, "%s: too many results", fnType)
	}
}

func newStep(category, name string, fn any, opts ...StepOption) (*Step, error) {
	val := reflect.ValueOf(fn)
	if !val.IsValid() || val.Kind() != reflect.Func || val.IsNil() {
		return nil, errors.Wrapf(ErrNotRegistered, "%T is not a function", fn)
	}

	valueOut, err := checkSignature(val.Type())
	if err != nil {
		return nil, err
	}

	step := &Step{
		Func:     fn,
		Category: category,
		Name:     name,
		fn:       val,
		withCtx:  val.Type().NumIn() > 0 && val.Type().In(0) == contextType,
		valueOut: valueOut,
	}
	for _, opt := range opts {
		opt(step)
	}

	return step, nil
}

func (s *Step) details(index int) *model.StepInfo {
	info := &model.StepInfo{
		Index:    index,
		Name:     s.Name,
		Category: s.Category,
		Args:     make([]string, 0, len(s.Args)),
		Kwargs:   make(map[string]string, len(s.Kwargs)),
	}

	for _, arg := range s.Args {
		info.Args = append(info.Args, fmt.Sprint(arg))
	}

	for k, v := range s.Kwargs {
		info.Kwargs[k] = fmt.Sprint(v)
	}

	return info
}

func paramType(fnType reflect.Type, pos int) (reflect.Type, bool) {
	last := fnType.NumIn() - 1
	if fnType.IsVariadic() && pos >= last {
		return fnType.In(last).Elem(), true
	}

	if pos > last {
		return nil, false
	}

	return fnType.In(pos), true
}

func nilable(t reflect.Type) bool {
	switch t.Kind() { //nolint:exhaustive // only nilable kinds matter
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

func argValue(value any, target reflect.Type) (reflect.Value, bool) {
	if value == nil {
		if !nilable(target) {
			return reflect.Value{}, false
		}

		return reflect.Zero(target), true
	}

	val := reflect.ValueOf(value)
	if !val.Type().AssignableTo(target) {
		return reflect.Value{}, false
	}

	return val, true
}

func (s *Step) arguments(ctx context.Context, values []any) ([]reflect.Value, error) {
	fnType := s.fn.Type()
	in := make([]reflect.Value, 0, fnType.NumIn())

	if s.withCtx {
		in = append(in, reflect.ValueOf(ctx))
	}

	for _, value := range values {
		target, ok := paramType(fnType, len(in))
		if !ok {
			return nil, errors.Wrapf(ErrBadArguments, "%s takes %d arguments, got more", fnType, fnType.NumIn())
		}

		val, ok := argValue(value, target)
		if !ok {
			return nil, errors.Wrapf(ErrBadArguments, "argument %d: cannot use %T as %s", len(in), value, target)
		}

		in = append(in, val)
	}

	required := fnType.NumIn()
	if fnType.IsVariadic() {
		required--
	}

	if len(in) < required {
		return nil, errors.Wrapf(ErrBadArguments, "%s takes %d arguments, got %d", fnType, required, len(in))
	}

	return in, nil
}

func (s *Step) call(ctx context.Context, values []any) (out any, err error) {
	in, err := s.arguments(ctx, values)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.Wrapf(ErrStepPanicked, "%v", r)
		}
	}()

	results := s.fn.Call(in)

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		if !s.valueOut {
			return nil, asError(results[0])
		}

		return results[0].Interface(), nil
	default:
		if err := asError(results[1]); err != nil {
			return nil, err
		}

		return results[0].Interface(), nil
	}
}

func asError(val reflect.Value) error {
	if val.IsNil() {
		return nil
	}

	err, _ := val.Interface().(error)

	return err
}
