package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"task-timelog/internal/api"
	"task-timelog/internal/domain"
	"task-timelog/internal/errors"
	"task-timelog/internal/services"
)

// WatchCommand shows a live ticking view of one task's timer
type WatchCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Interval time.Duration
}

// NewWatchCommand creates a new watch command handler
func NewWatchCommand(app *App) *WatchCommand {
	return &WatchCommand{app: app, errorHandler: NewErrorHandler(), Interval: time.Second}
}

// Execute runs the watch view until the user quits or ctx ends
func (c *WatchCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "watch", "usage: tl watch <task>")
	}

	id, err := c.app.api.ResolveTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("watch task", err)
	}

	model := newWatchModel(ctx, c.app.api, id, c.app.styles, c.Interval)
	options := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(c.app.out)}
	if c.app.input != nil {
		options = append(options, tea.WithInput(c.app.input))
	}
	program := tea.NewProgram(model, options...)
	final, err := program.Run()
	if err != nil {
		return c.errorHandler.Handle("watch task", err)
	}
	if m, ok := final.(watchModel); ok && m.err != nil {
		return c.errorHandler.Handle("watch task", m.err)
	}
	return nil
}

type watchKeyMap struct {
	Toggle key.Binding
	Quit   key.Binding
}

func defaultWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s", "start/stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type watchTickMsg struct{}

type watchStatusMsg struct {
	status *services.LiveStatus
	err    error
}

type watchToggledMsg struct {
	task *domain.Task
	err  error
}

// watchModel polls the task once per interval. Elapsed time always comes
// from the stored log, so other processes' changes show up on the next tick.
type watchModel struct {
	ctx      context.Context
	api      api.API
	id       string
	keys     watchKeyMap
	help     help.Model
	styles   Styles
	interval time.Duration

	status  *services.LiveStatus
	message string
	err     error
}

func newWatchModel(ctx context.Context, a api.API, id string, styles Styles, interval time.Duration) watchModel {
	if interval <= 0 {
		interval = time.Second
	}
	return watchModel{
		ctx:      ctx,
		api:      a,
		id:       id,
		keys:     defaultWatchKeyMap(),
		help:     help.New(),
		styles:   styles,
		interval: interval,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.tick())
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

func (m watchModel) refresh() tea.Cmd {
	return func() tea.Msg {
		status, err := m.api.LiveElapsed(m.ctx, m.id)
		return watchStatusMsg{status: status, err: err}
	}
}

func (m watchModel) toggle() tea.Cmd {
	return func() tea.Msg {
		task, err := m.api.ToggleTimer(m.ctx, m.id)
		return watchToggledMsg{task: task, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		return m, tea.Batch(m.refresh(), m.tick())

	case watchStatusMsg:
		if msg.err != nil {
			if errors.IsErrorType(msg.err, errors.ErrorTypeNotFound) {
				m.err = msg.err
				return m, tea.Quit
			}
			m.message = errors.GetUserMessage(msg.err)
			return m, nil
		}
		m.status = msg.status
		return m, nil

	case watchToggledMsg:
		if msg.err != nil {
			m.message = errors.GetUserMessage(msg.err)
			return m, nil
		}
		if msg.task.IsRunning() {
			m.message = "Timer started"
		} else {
			m.message = "Timer stopped"
		}
		return m, m.refresh()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.message = ""
			return m, m.toggle()
		}
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.status == nil {
		if m.message != "" {
			return m.styles.Problem.Render(m.message) + "\n"
		}
		return "Loading...\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.status.Task.String()))
	b.WriteString("\n\n")

	current := m.styles.Timer.Render(m.status.Current)
	state := m.styles.Stopped.Render("stopped")
	if m.status.IsRunning {
		current = m.styles.Running.Padding(0, 1).Render(m.status.Current)
		state = m.styles.Running.Render("running")
	}
	b.WriteString(current + "  " + state + "\n")
	b.WriteString(m.styles.Muted.Render("total " + m.status.Total))

	out := m.styles.Box.Render(b.String()) + "\n"
	if m.message != "" {
		out += m.message + "\n"
	}
	return out + m.help.View(m.keys) + "\n"
}
