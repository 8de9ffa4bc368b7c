package source_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-flowpilot/internal/source"
)

func TestParamNames(t *testing.T) {
	t.Parallel()

	fnType := reflect.TypeOf(func(int, string, bool) {})

	assert.Equal(t, []string{"arg0", "arg1", "arg2"}, source.ParamNames(fnType, nil))
	assert.Equal(t, []string{"rows", "arg1", "arg2"}, source.ParamNames(fnType, []string{"rows"}))
	assert.Equal(t, []string{"a", "arg1", "c"}, source.ParamNames(fnType, []string{"a", "", "c", "extra"}))
	assert.Nil(t, source.ParamNames(reflect.TypeOf(1), nil))
}

func TestOutputType(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		fn       any
		expected string
	}{
		"no results":       {fn: func() {}, expected: "Any"},
		"one result":       {fn: func() int { return 0 }, expected: "int"},
		"value and error":  {fn: func() ([]string, error) { return nil, nil }, expected: "([]string, error)"},
		"map result":       {fn: func() map[string]any { return nil }, expected: "map[string]interface {}"},
		"already variadic": {fn: func(...int) bool { return true }, expected: "bool"},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, source.OutputType(reflect.TypeOf(tc.fn)))
		})
	}
}

func TestStub(t *testing.T) {
	t.Parallel()

	fnType := reflect.TypeOf(func([]int, ...string) (int, error) { return 0, nil })

	expected := "def clean(rows, arg1):\n" +
		"    \"\"\"\n" +
		"    drops empty rows\n" +
		"\n" +
		"    Input types:\n" +
		"        rows: []int\n" +
		"        arg1: ...string\n" +
		"\n" +
		"    Output type: (int, error)\n" +
		"    \"\"\"\n" +
		"    pass\n"

	assert.Equal(t, expected, source.Stub("clean", fnType, []string{"rows"}, "drops empty rows"))
}

func TestStubWithoutComment(t *testing.T) {
	t.Parallel()

	got := source.Stub("noop", reflect.TypeOf(func() {}), nil, "")
	assert.Contains(t, got, "def noop():\n")
	assert.Contains(t, got, "    No description\n")
	assert.Contains(t, got, "    Output type: Any\n")
}
