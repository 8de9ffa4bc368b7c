package pipeline_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-flowpilot/pkg/pipeline/model"
	"github.com/askiada/go-flowpilot/pkg/registry"
)

var errBoom = errors.New("boom")

func double(x int) int { return x * 2 }

func increment(x int) int { return x + 1 }

func seed(n int) int { return n }

func upper(s string) string { return strings.ToUpper(s) }

func scale(x int, kwargs map[string]any) int {
	factor, _ := kwargs["factor"].(int)

	return x * factor
}

func sum(values ...int) int {
	total := 0
	for _, v := range values {
		total += v
	}

	return total
}

func fails(int) (int, error) { return 0, errBoom }

func explode(int) int { panic("kaboom") }

func sink(int) {}

func nothing() string { return "fresh" }

type ctxKey struct{}

func fromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)

	return v
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New([]string{"data_loader", "preprocessor", "data_writer"})

	tag := func(category string, fns ...any) {
		for _, fn := range fns {
			require.NoError(t, reg.RegisterFunction(category, "")(fn))
		}
	}

	tag("data_loader", seed, nothing, fromContext)
	tag("preprocessor", double, increment, upper, scale, sum, fails, explode)
	tag("data_writer", sink)

	return reg
}

type failingFeature struct {
	onNew bool
}

func (f failingFeature) New() error {
	if f.onNew {
		return errBoom
	}

	return nil
}

func (failingFeature) PrepareStep(_, _ *model.StepInfo) error { return errBoom }

func (failingFeature) OnStepOutput(*model.StepInfo, time.Duration) error { return nil }

func (failingFeature) Finish(time.Duration) error { return nil }

//go:noinline
func adder(n int) func(int) int {
	return func(x int) int { return x + n }
}
