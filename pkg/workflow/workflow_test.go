package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestEngineRunsStepsInOrder(t *testing.T) {
	var ran []string
	step := func(name string) Step {
		return Step{Name: name, Run: func(ctx context.Context, st *State) error {
			ran = append(ran, name)
			return nil
		}}
	}

	engine := NewEngine([]Step{step("first"), step("second"), step("third")}, discardLogger())
	err := engine.Run(context.Background(), &State{})

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, ran)
}

func TestEngineHaltsOnFirstError(t *testing.T) {
	var ran []string
	boom := errors.New("boom")

	steps := []Step{
		{Name: "ok", Run: func(ctx context.Context, st *State) error {
			ran = append(ran, "ok")
			return nil
		}},
		{Name: "fails", Run: func(ctx context.Context, st *State) error {
			ran = append(ran, "fails")
			return boom
		}},
		{Name: "never", Run: func(ctx context.Context, st *State) error {
			ran = append(ran, "never")
			return nil
		}},
	}

	err := NewEngine(steps, discardLogger()).Run(context.Background(), &State{})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"ok", "fails"}, ran)
}

func TestEnginePropagatesCancellation(t *testing.T) {
	steps := []Step{
		{Name: "cancels", Run: func(ctx context.Context, st *State) error {
			return ErrCanceled
		}},
		{Name: "never", Run: func(ctx context.Context, st *State) error {
			t.Fatal("step after cancellation must not run")
			return nil
		}},
	}

	err := NewEngine(steps, discardLogger()).Run(context.Background(), &State{})
	require.ErrorIs(t, err, ErrCanceled)
}

func TestEnginePreservesFatalError(t *testing.T) {
	steps := []Step{
		{Name: "fatal", Run: func(ctx context.Context, st *State) error {
			return Fatalf(ExitUnsupportedOS, "nope")
		}},
	}

	err := NewEngine(steps, discardLogger()).Run(context.Background(), &State{})

	var fatal *FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, ExitUnsupportedOS, fatal.Code)
}

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitOK},
		{"cancellation", ErrCanceled, ExitOK},
		{"wrapped cancellation", fmt.Errorf("outer: %w", ErrCanceled), ExitOK},
		{"fatal run-as-root", Fatalf(ExitRunAsRoot, "root"), ExitRunAsRoot},
		{"fatal descriptor missing", Fatalf(ExitDescriptorMissing, "gone"), ExitDescriptorMissing},
		{"plain delegated failure", errors.New("dnf exploded"), ExitDelegatedFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExitCode(tc.err))
		})
	}
}
