package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/domain"
	"moviespot/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// Searcher runs the search flow
type Searcher interface {
	Search(ctx context.Context, query string) (domain.MovieRecord, error)
}

// Locator runs the location flow
type Locator interface {
	Locate(ctx context.Context) (domain.Coordinates, error)
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx      context.Context
	State    *state.AppState
	Searcher Searcher
	Locator  Locator
}

// SearchDoneMsg is returned once a search flow run has finished. The outcome
// itself reaches the model through the event bus.
type SearchDoneMsg struct {
	Query string
	Err   error
}

// LocateDoneMsg is returned once a location flow run has finished
type LocateDoneMsg struct {
	Err error
}

// SearchCommand looks up the title currently in the input
type SearchCommand struct {
	ctx   *CommandContext
	query string
}

// NewSearchCommand creates a new search command
func NewSearchCommand(ctx *CommandContext, query string) *SearchCommand {
	return &SearchCommand{
		ctx:   ctx,
		query: query,
	}
}

// Execute starts the lookup in the background. Overlapping runs are not
// guarded; whichever result arrives last is kept.
func (c *SearchCommand) Execute() tea.Cmd {
	if c.ctx.State != nil {
		c.ctx.State.Query = c.query
	}
	if c.ctx.Searcher == nil {
		return nil
	}
	runCtx, searcher, query := c.ctx.context(), c.ctx.Searcher, c.query
	return func() tea.Msg {
		_, err := searcher.Search(runCtx, query)
		return SearchDoneMsg{Query: query, Err: err}
	}
}

// LocateCommand asks for permission and reads the current position
type LocateCommand struct {
	ctx *CommandContext
}

// NewLocateCommand creates a new locate command
func NewLocateCommand(ctx *CommandContext) *LocateCommand {
	return &LocateCommand{ctx: ctx}
}

// Execute starts the location flow in the background
func (c *LocateCommand) Execute() tea.Cmd {
	if c.ctx.Locator == nil {
		return nil
	}
	runCtx, locator := c.ctx.context(), c.ctx.Locator
	return func() tea.Msg {
		_, err := locator.Locate(runCtx)
		return LocateDoneMsg{Err: err}
	}
}

func (c *CommandContext) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
