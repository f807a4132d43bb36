package cli

import (
	"context"
	"sort"
	"strings"

	"task-timelog/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry with every handler bound to app
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("create", NewCreateCommand(app))
	registry.Register("edit", NewEditCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("current", NewCurrentCommand(app))
	registry.Register("start", NewStartCommand(app))
	registry.Register("stop", NewStopCommand(app))
	registry.Register("toggle", NewToggleCommand(app))
	registry.Register("resume", NewResumeCommand(app))
	registry.Register("show", NewShowCommand(app))
	registry.Register("row", NewRowCommand(app))
	registry.Register("output", NewOutputCommand(app))
	registry.Register("watch", NewWatchCommand(app))
	registry.Register("delete", NewDeleteCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Get returns the handler registered under name
func (r *CommandRegistry) Get(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command, "+r.GetUsage())
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: tl <" + strings.Join(r.Names(), "|") + "> [args]"
}
