package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-flowpilot/pkg/pipeline"
	"github.com/askiada/go-flowpilot/pkg/pipeline/drawer"
	"github.com/askiada/go-flowpilot/pkg/pipeline/measure"
	"github.com/askiada/go-flowpilot/pkg/registry"
)

type stepDef struct {
	category string
	fn       any
	opts     []pipeline.StepOption
}

func build(t *testing.T, steps ...stepDef) *pipeline.Pipeline {
	t.Helper()

	pipe, err := pipeline.New(newRegistry(t))
	require.NoError(t, err)

	for _, s := range steps {
		require.NoError(t, pipe.AddStep(s.category, s.fn, s.opts...))
	}

	return pipe
}

func TestNewWithoutResolver(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(nil)
	assert.ErrorIs(t, err, pipeline.ErrResolverMustBeSet)
}

func TestExecute(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		steps []stepDef
		want  any
	}{
		"empty pipeline": {
			want: nil,
		},
		"chained in order": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(3)}},
				{"preprocessor", double, nil},
				{"preprocessor", increment, nil},
			},
			want: 7,
		},
		"order matters": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(3)}},
				{"preprocessor", increment, nil},
				{"preprocessor", double, nil},
			},
			want: 8,
		},
		"keyword arguments": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(4)}},
				{"preprocessor", scale, []pipeline.StepOption{pipeline.Kwargs(map[string]any{"factor": 3})}},
			},
			want: 12,
		},
		"extra arguments after chained value": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(1)}},
				{"preprocessor", sum, []pipeline.StepOption{pipeline.Args(2, 3)}},
			},
			want: 6,
		},
		"step without output chains nothing": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(1)}},
				{"data_writer", sink, nil},
				{"data_loader", nothing, nil},
			},
			want: "fresh",
		},
		"last step without output": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(1)}},
				{"data_writer", sink, nil},
			},
			want: nil,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe := build(t, tc.steps...)

			got, err := pipe.Execute(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExecuteInjectsContext(t *testing.T) {
	t.Parallel()

	pipe := build(t,
		stepDef{"data_loader", fromContext, nil},
		stepDef{"preprocessor", upper, nil},
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "hello")

	got, err := pipe.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got)
}

func TestExecuteErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		steps   []stepDef
		wantErr error
		wantMsg string
	}{
		"step returns an error": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(1)}},
				{"preprocessor", fails, nil},
				{"preprocessor", double, nil},
			},
			wantErr: errBoom,
			wantMsg: "step 2 (fails)",
		},
		"step panics": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(1)}},
				{"preprocessor", explode, nil},
			},
			wantErr: pipeline.ErrStepPanicked,
			wantMsg: "kaboom",
		},
		"wrong argument type": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(1)}},
				{"preprocessor", upper, nil},
			},
			wantErr: pipeline.ErrBadArguments,
			wantMsg: "step 2 (upper)",
		},
		"missing argument": {
			steps: []stepDef{
				{"preprocessor", double, nil},
			},
			wantErr: pipeline.ErrBadArguments,
			wantMsg: "step 1 (double)",
		},
		"too many arguments": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(1, 2)}},
			},
			wantErr: pipeline.ErrBadArguments,
		},
		"nil for a value parameter": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(nil)}},
			},
			wantErr: pipeline.ErrBadArguments,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe := build(t, tc.steps...)

			got, err := pipe.Execute(context.Background())
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestExecuteCancelled(t *testing.T) {
	t.Parallel()

	pipe := build(t, stepDef{"data_loader", seed, []pipeline.StepOption{pipeline.Args(1)}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipe.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAddStep(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t)
	badSignature := func() (int, int) { return 0, 0 }
	require.NoError(t, reg.RegisterFunction("preprocessor", "")(badSignature))

	tests := map[string]struct {
		category string
		fn       any
		wantErr  error
	}{
		"registered in category": {
			category: "preprocessor",
			fn:       double,
		},
		"category mismatch": {
			category: "data_loader",
			fn:       double,
			wantErr:  pipeline.ErrCategoryMismatch,
		},
		"not registered": {
			category: "preprocessor",
			fn:       func(x int) int { return x },
			wantErr:  pipeline.ErrNotRegistered,
		},
		"not a function": {
			category: "preprocessor",
			fn:       42,
			wantErr:  pipeline.ErrNotRegistered,
		},
		"unsupported results": {
			category: "preprocessor",
			fn:       badSignature,
			wantErr:  pipeline.ErrBadSignature,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := pipeline.New(reg)
			require.NoError(t, err)

			err = pipe.AddStep(tc.category, tc.fn)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Zero(t, pipe.Len())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, pipe.Len())
		})
	}
}

func TestShowPipelineSteps(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		steps []stepDef
		want  string
	}{
		"empty": {
			want: "The pipeline is empty.\n",
		},
		"with arguments": {
			steps: []stepDef{
				{"data_loader", seed, []pipeline.StepOption{pipeline.Args(3)}},
				{"preprocessor", scale, []pipeline.StepOption{pipeline.Kwargs(map[string]any{"factor": 2})}},
				{"preprocessor", sum, []pipeline.StepOption{pipeline.Args(1, 2), pipeline.Name("total")}},
			},
			want: "Pipeline steps:\n" +
				"1. [data_loader] seed(3)\n" +
				"2. [preprocessor] scale(factor=2)\n" +
				"3. [preprocessor] total(1, 2)\n",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			require.NoError(t, build(t, tc.steps...).ShowPipelineSteps(&buf))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestGetPipelineStepsJSON(t *testing.T) {
	t.Parallel()

	pipe := build(t,
		stepDef{"data_loader", seed, []pipeline.StepOption{pipeline.Args(3)}},
		stepDef{"preprocessor", scale, []pipeline.StepOption{pipeline.Kwargs(map[string]any{"factor": 2})}},
	)

	raw, err := pipe.GetPipelineStepsJSON()
	require.NoError(t, err)

	var got []struct {
		Kwargs   map[string]string `json:"kwargs"`
		Name     string            `json:"name"`
		Category string            `json:"category"`
		Args     []string          `json:"args"`
		Index    int               `json:"index"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, "seed", got[0].Name)
	assert.Equal(t, "data_loader", got[0].Category)
	assert.Equal(t, []string{"3"}, got[0].Args)
	assert.Equal(t, map[string]string{"factor": "2"}, got[1].Kwargs)

	empty, err := build(t).GetPipelineStepsJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestDraw(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	pipe := build(t,
		stepDef{"data_loader", seed, []pipeline.StepOption{pipeline.Args(3)}},
		stepDef{"preprocessor", double, nil},
	)
	require.NoError(t, pipe.Draw(&buf))

	got := buf.String()
	assert.Contains(t, got, `"start" -> "1. seed" [ weight=0 ];`)
	assert.Contains(t, got, `"1. seed" -> "2. double" [ weight=0 ];`)
	assert.Contains(t, got, `"2. double" -> "end" [ weight=0 ];`)
}

func TestFeatures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	msr := measure.NewDefaultMeasure()
	pipe, err := pipeline.New(newRegistry(t), pipeline.WithFeatures(
		measure.PipelineMeasure(msr),
		drawer.PipelineDrawer(drawer.NewDOTDrawer(&buf), msr),
	))
	require.NoError(t, err)

	require.NoError(t, pipe.AddStep("data_loader", seed, pipeline.Args(2)))
	require.NoError(t, pipe.AddStep("preprocessor", double))

	for i := 0; i < 2; i++ {
		got, err := pipe.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, got)
	}

	for _, id := range []string{"1. seed", "2. double"} {
		mt := msr.GetMetric(id)
		require.NotNil(t, mt, id)
		assert.Equal(t, int64(2), mt.Runs(), id)
	}

	assert.Positive(t, msr.GetMetric("end").GetTotalDuration())
	assert.Contains(t, buf.String(), `"2. double" -> "end"`)
}

func TestFeatureFailure(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(newRegistry(t), pipeline.WithFeatures(failingFeature{}))
	require.NoError(t, err)

	err = pipe.AddStep("data_loader", seed, pipeline.Args(1))
	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, pipe.Len())

	_, err = pipeline.New(newRegistry(t), pipeline.WithFeatures(failingFeature{onNew: true}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBoom))
}

func TestAddStepFactoryClosures(t *testing.T) {
	t.Parallel()

	addTen, addFive := adder(10), adder(5)

	reg := registry.New([]string{"data_reader", "data_transformer"})
	require.NoError(t, reg.RegisterFunction("data_reader", "")(addTen, registry.WithName("add_ten")))
	require.NoError(t, reg.RegisterFunction("data_transformer", "")(addFive, registry.WithName("add_five")))

	pipe, err := pipeline.New(reg)
	require.NoError(t, err)

	require.NoError(t, pipe.AddStep("data_reader", addTen, pipeline.Args(1)))
	require.NoError(t, pipe.AddStep("data_transformer", addFive))

	got, err := pipe.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 16, got)

	steps := pipe.Steps()
	assert.Equal(t, "add_ten", steps[0].Name)
	assert.Equal(t, "add_five", steps[1].Name)
}

func TestExecuteEmptyFinishesFeatures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	pipe, err := pipeline.New(newRegistry(t), pipeline.WithFeatures(
		drawer.PipelineDrawer(drawer.NewDOTDrawer(&buf), nil),
	))
	require.NoError(t, err)

	got, err := pipe.Execute(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Contains(t, buf.String(), `"start" -> "end" [ weight=0 ];`)
}

func TestStepsReturnsCopies(t *testing.T) {
	t.Parallel()

	pipe := build(t,
		stepDef{"data_loader", seed, []pipeline.StepOption{pipeline.Args(3)}},
		stepDef{"preprocessor", scale, []pipeline.StepOption{pipeline.Kwargs(map[string]any{"factor": 2})}},
	)

	steps := pipe.Steps()
	steps[0].Args[0] = "9"
	steps[1].Kwargs["factor"] = "9"

	again := pipe.Steps()
	assert.Equal(t, []string{"3"}, again[0].Args)
	assert.Equal(t, map[string]string{"factor": "2"}, again[1].Kwargs)
}
