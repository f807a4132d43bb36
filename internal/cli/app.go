package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"task-timelog/internal/api"
	"task-timelog/internal/config"
	"task-timelog/internal/errors"
)

// App carries what every command handler needs
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
	in     *bufio.Reader
	input  io.Reader // nil means the terminal
	styles Styles
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(api api.API, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		api:    api,
		config: cfg,
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
		styles: DefaultStyles(),
	}
}

// SetOutput redirects command output
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// SetInput redirects interactive prompts
func (a *App) SetInput(r io.Reader) {
	a.input = r
	a.in = bufio.NewReader(r)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// prompt prints question and returns the trimmed answer line
func (a *App) prompt(question string) (string, error) {
	a.printf("%s", question)
	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// choose asks for a 1-based selection out of n. ok is false when the user quits.
func (a *App) choose(question string, n int) (index int, ok bool, err error) {
	input, err := a.prompt(question)
	if err != nil {
		return 0, false, err
	}
	if input == "" || strings.EqualFold(input, "q") {
		return 0, false, nil
	}
	idx, convErr := strconv.Atoi(input)
	if convErr != nil || idx < 1 || idx > n {
		return 0, false, errors.NewInvalidInputError("selection", input, "invalid selection")
	}
	return idx - 1, true, nil
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return 0, errors.NewInvalidInputError("index", arg, "row index must be a non-negative integer")
	}
	return index, nil
}
