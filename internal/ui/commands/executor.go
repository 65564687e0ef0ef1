package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, state *state.AppState, searcher Searcher, locator Locator) *Executor {
	return &Executor{
		ctx: &CommandContext{
			Ctx:      ctx,
			State:    state,
			Searcher: searcher,
			Locator:  locator,
		},
	}
}

// ExecuteSearch creates and executes a search command
func (e *Executor) ExecuteSearch(query string) tea.Cmd {
	cmd := NewSearchCommand(e.ctx, query)
	return cmd.Execute()
}

// ExecuteLocate creates and executes a locate command
func (e *Executor) ExecuteLocate() tea.Cmd {
	cmd := NewLocateCommand(e.ctx)
	return cmd.Execute()
}
