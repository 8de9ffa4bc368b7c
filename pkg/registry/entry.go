package registry

import (
	"reflect"
	"runtime"
	"strings"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/askiada/go-flowpilot/internal/source"
)

// NoComment is displayed for functions registered without a comment.
const NoComment = "No comment"

// FunctionEntry is one tagged function.
type FunctionEntry struct {
	// Name is unique within the category.
	Name     string
	Category string
	// Comment is empty when none was given.
	Comment string
	// Func is the tagged callable.
	Func any
	// Source is the definition captured at registration time, decorator included.
	Source string
	// Params names the inputs used when a placeholder definition is generated.
	Params []string

	id uintptr
}

// Type returns the reflected signature of the callable.
func (e *FunctionEntry) Type() reflect.Type {
	return reflect.TypeOf(e.Func)
}

// DisplayComment returns the comment or NoComment.
func (e *FunctionEntry) DisplayComment() string {
	if e.Comment == "" {
		return NoComment
	}

	return e.Comment
}

// StrippedSource returns the captured source without its tagging decorator, or a
// placeholder definition when no source was captured.
func (e *FunctionEntry) StrippedSource() string {
	if strings.TrimSpace(e.Source) == "" {
		return source.Stub(e.Name, e.Type(), e.Params, e.Comment)
	}

	return source.StripDecorator(e.Source)
}

// EntryOption customises a registration.
type EntryOption func(e *FunctionEntry)

// WithName overrides the name derived from the function symbol.
func WithName(name string) EntryOption {
	return func(e *FunctionEntry) {
		e.Name = name
	}
}

// WithSource attaches the definition emitted when the category is written to a file.
func WithSource(src string) EntryOption {
	return func(e *FunctionEntry) {
		e.Source = src
	}
}

// WithParams names the function inputs for generated placeholder definitions.
func WithParams(names ...string) EntryOption {
	return func(e *FunctionEntry) {
		e.Params = names
	}
}

func funcValue(fn any) (reflect.Value, error) {
	val := reflect.ValueOf(fn)
	if !val.IsValid() || val.Kind() != reflect.Func || val.IsNil() {
		return reflect.Value{}, errors.Wrapf(ErrNotAFunction, "got %T", fn)
	}

	return val, nil
}

// eface is the layout of an interface holding a func value.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// FuncID returns the stable identifier a callable is tagged under: the address of
// its closure object. Every reference to a top-level function shares one static
// closure, while each closure or method value built at run time gets its own.
func FuncID(fn any) (uintptr, error) {
	if _, err := funcValue(fn); err != nil {
		return 0, err
	}

	return uintptr((*eface)(unsafe.Pointer(&fn)).data), nil
}

// FuncName derives a short name from the symbol of fn, for example "loadCSV" for
// "github.com/acme/etl.loadCSV". Closures resolve to their generated name ("func1").
func FuncName(fn any) string {
	val, err := funcValue(fn)
	if err != nil {
		return ""
	}

	rf := runtime.FuncForPC(val.Pointer())
	if rf == nil {
		return ""
	}

	name := rf.Name()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}

	return strings.TrimSuffix(name, "-fm")
}
