// Package workflow implements the provisioning workflow: an ordered list
// of named steps that either all succeed in sequence or abort the run on
// the first fatal error. There is no rollback; a partial install is an
// accepted end state surfaced as a process failure.
package workflow

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"dotnetup/pkg/env"
	"dotnetup/pkg/trust"
)

// Step is one stage of the provisioning workflow.
type Step struct {
	Name string
	Run  func(ctx context.Context, st *State) error
}

// State is threaded through the steps. Each step assumes the previous
// step's postcondition; nothing here is persisted.
type State struct {
	Host             *env.Host
	ExistingVersion  string
	ScratchDir       string
	TrustKey         *trust.KeyInfo
	InstalledPath    string
	InstalledVersion string
	SDKs             []string
	Runtimes         []string
	Warnings         []string
}

// Warn records a non-fatal problem for the completion report.
func (st *State) Warn(message string) {
	st.Warnings = append(st.Warnings, message)
}

// Engine folds a State through an ordered step list, halting on the first
// error.
type Engine struct {
	steps  []Step
	logger *log.Logger
}

// NewEngine creates an engine over the given steps.
func NewEngine(steps []Step, logger *log.Logger) *Engine {
	return &Engine{steps: steps, logger: logger}
}

// Run executes the steps in order. It returns ErrCanceled when the
// operator declines to continue, a FatalError for a known failure site,
// or the underlying error for a delegated tool failure.
func (e *Engine) Run(ctx context.Context, st *State) error {
	for _, step := range e.steps {
		e.logger.Debug("running step", "step", step.Name)

		if err := step.Run(ctx, st); err != nil {
			if errors.Is(err, ErrCanceled) {
				e.logger.Debug("workflow canceled", "step", step.Name)
				return err
			}
			e.logger.Error("step failed", "step", step.Name, "err", err)
			return err
		}

		e.logger.Debug("step complete", "step", step.Name)
	}

	return nil
}
