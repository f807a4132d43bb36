package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"task-timelog/internal/api"
	"task-timelog/internal/config"
	"task-timelog/internal/logging"
)

// Opener builds the API for a resolved configuration. The returned close
// function releases what the API holds.
type Opener func(cfg *config.Config) (api.API, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	loader   *config.Loader
	open     Opener
	app      *App
	registry *CommandRegistry
	config   *config.Config
	closeFn  func() error
}

// NewRootCommand creates the root cobra command with global flags. The
// configuration is loaded and the API opened once flags are parsed.
func NewRootCommand(loader *config.Loader, open Opener) *RootCommand {
	root := &RootCommand{
		loader: loader,
		open:   open,
		app:    NewApp(nil, nil),
	}
	root.registry = NewCommandRegistry(root.app)

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "Track time against tasks and bill it",
		Long: `tl keeps a time log per task: start and stop a timer, see how long a task took
and what it is worth at the task's hourly rate.

EXAMPLES:
  tl create --number T-12 --rate 80 "Write the report"
  tl start T-12                 # tasks are named by number or ID
  tl stop T-12
  tl show T-12                  # total, amount and every interval
  tl show T-12 --seconds        # raw total in seconds
  tl row T-12 0                 # duration of the first interval
  tl watch T-12                 # live view, s toggles, q quits
  tl list --running

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    TL_DB_DIR                     Database directory (default: ~/.tl)
    TL_DB_FILENAME                Database filename (default: tl.db)
    TL_DB_QUERY_TIMEOUT           Query timeout (default: 10s)
    TL_DB_DIR_PERMISSIONS         Octal permissions of the database directory (default: 755)
    TL_DISPLAY_DATE_FORMAT        Go layout for row dates (default: 2006-01-02)
    TL_DISPLAY_TIME_FORMAT        Go layout for row times (default: 15:04:05)
    TL_DISPLAY_RUNNING_LABEL      End label of an open interval (default: running)
    TL_DISPLAY_LOCATION           Time zone for labels (default: Local)
    TL_DISPLAY_AMOUNT_FORMAT      Amount format (default: #,###.##)
    TL_VALIDATION_DESCRIPTION_MAX Max description length (default: 1000)
    TL_VALIDATION_MAX_RATE        Max hourly rate (default: 100000)
    TL_LOCK_FILENAME              Lock file next to the database (default: tl.lock)
    TL_LOCK_TIMEOUT               Lock acquisition timeout (default: 5s)
    TL_LOCK_RETRY_DELAY           Lock polling interval (default: 50ms)
    TL_APP_TIMEOUT                Application timeout (default: 60s)
    TL_APP_VERBOSE                Show task IDs in lists (default: false)
    TL_DEBUG                      Print debug output to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and releases the API afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.closeFn != nil {
		if closeErr := r.closeFn(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.closeFn = nil
	}
	return err
}

// SetArgs sets the arguments, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output
func (r *RootCommand) SetOutput(w io.Writer) {
	r.app.SetOutput(w)
	r.cmd.SetOut(w)
}

// SetInput redirects interactive prompts
func (r *RootCommand) SetInput(in io.Reader) {
	r.app.SetInput(in)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides TL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TL_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TL_DB_QUERY_TIMEOUT)")

	flags.String("date-format", "", "Go layout for row dates (overrides TL_DISPLAY_DATE_FORMAT)")
	flags.String("time-format", "", "Go layout for row times (overrides TL_DISPLAY_TIME_FORMAT)")
	flags.String("running-label", "", "End label of an open interval (overrides TL_DISPLAY_RUNNING_LABEL)")
	flags.String("location", "", "Time zone for labels (overrides TL_DISPLAY_LOCATION)")

	flags.Duration("lock-timeout", 0, "Lock acquisition timeout (overrides TL_LOCK_TIMEOUT)")

	flags.Duration("app-timeout", 0, "Application timeout (overrides TL_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Show task IDs in lists (overrides TL_APP_VERBOSE)")
}

// overridesFromFlags collects the global flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	str := func(name string, dst **string) {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*dst = &v
		}
	}
	dur := func(name string, dst **time.Duration) {
		if flags.Changed(name) {
			v, _ := flags.GetDuration(name)
			*dst = &v
		}
	}

	str("db-dir", &overrides.DBDir)
	str("db-filename", &overrides.DBFilename)
	dur("db-query-timeout", &overrides.DBQueryTimeout)
	str("date-format", &overrides.DateFormat)
	str("time-format", &overrides.TimeFormat)
	str("running-label", &overrides.RunningLabel)
	str("location", &overrides.Location)
	dur("lock-timeout", &overrides.LockTimeout)
	dur("app-timeout", &overrides.Timeout)
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}

// setup loads configuration with flag overrides and opens the API
func (r *RootCommand) setup() error {
	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Debugf("using database %s\n", cfg.GetDatabasePath())

	apiInstance, closeFn, err := r.open(cfg)
	if err != nil {
		return err
	}

	r.config = cfg
	r.closeFn = closeFn
	r.app.api = apiInstance
	r.app.config = cfg
	return nil
}

// timeoutMode selects how long a subcommand may run
type timeoutMode int

const (
	timeoutDefault timeoutMode = iota
	timeoutInteractive
	timeoutNone
)

// run dispatches a cobra invocation to the registered handler
func (r *RootCommand) run(name string, mode timeoutMode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if timeout := r.getAppTimeout(mode); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return r.registry.Execute(ctx, name, args)
	}
}

// getAppTimeout returns the configured application timeout for mode
func (r *RootCommand) getAppTimeout(mode timeoutMode) time.Duration {
	timeout := 60 * time.Second
	if r.config != nil {
		timeout = r.config.Application.Timeout
	}
	switch mode {
	case timeoutInteractive:
		// Prompts wait for the user
		return timeout * 2
	case timeoutNone:
		return 0
	default:
		return timeout
	}
}

func handler[T Command](registry *CommandRegistry, name string) T {
	command, _ := registry.Get(name)
	return command.(T)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	create := handler[*CreateCommand](r.registry, "create")
	createCmd := &cobra.Command{
		Use:   "create [description]",
		Short: "Create a task",
		Long:  "Create a task with an empty time log. A task needs a number, a description, or both.",
		RunE:  r.run("create", timeoutDefault),
	}
	createCmd.Flags().StringVarP(&create.Number, "number", "n", "", "Task number, e.g. T-12")
	createCmd.Flags().Float64VarP(&create.Rate, "rate", "r", 0, "Hourly rate")

	edit := handler[*EditCommand](r.registry, "edit")
	var editNumber, editDescription string
	var editRate float64
	editCmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Change a task's number, description or rate",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("number") {
				edit.Details.Number = &editNumber
			}
			if cmd.Flags().Changed("description") {
				edit.Details.Description = &editDescription
			}
			if cmd.Flags().Changed("rate") {
				edit.Details.Rate = &editRate
			}
		},
		RunE: r.run("edit", timeoutDefault),
	}
	editCmd.Flags().StringVarP(&editNumber, "number", "n", "", "New task number")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().Float64VarP(&editRate, "rate", "r", 0, "New hourly rate")

	list := handler[*ListCommand](r.registry, "list")
	listCmd := &cobra.Command{
		Use:   "list [text]",
		Short: "List tasks with their total durations",
		Long: `List tasks in creation order with their state and total duration.
Text filters match task numbers and descriptions (case-insensitive partial matching).`,
		RunE: r.run("list", timeoutDefault),
	}
	listCmd.Flags().BoolVar(&list.Running, "running", false, "Only tasks with a running timer")

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show running tasks",
		Args:  cobra.NoArgs,
		RunE:  r.run("current", timeoutDefault),
	}

	startCmd := &cobra.Command{
		Use:   "start <task>",
		Short: "Start a task's timer",
		Long:  "Open a new interval on the task. Starting a task that is already running is an error.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("start", timeoutDefault),
	}

	stopCmd := &cobra.Command{
		Use:   "stop <task>",
		Short: "Stop a task's timer",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("stop", timeoutDefault),
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <task>",
		Short: "Stop a running timer or start a stopped one",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("toggle", timeoutDefault),
	}

	resumeCmd := &cobra.Command{
		Use:   "resume [text]",
		Short: "Pick a stopped task and start its timer",
		RunE:  r.run("resume", timeoutInteractive),
	}

	show := handler[*ShowCommand](r.registry, "show")
	showCmd := &cobra.Command{
		Use:   "show <task>",
		Short: "Show a task's total, amount and intervals",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("show", timeoutDefault),
	}
	showCmd.Flags().BoolVar(&show.Seconds, "seconds", false, "Print only the total in seconds")

	rowCmd := &cobra.Command{
		Use:   "row <task> <index>",
		Short: "Show the duration of one interval",
		Args:  cobra.ExactArgs(2),
		RunE:  r.run("row", timeoutDefault),
	}

	output := handler[*OutputCommand](r.registry, "output")
	outputCmd := &cobra.Command{
		Use:   "output [text]",
		Short: "Export every interval",
		Long: `Export one line per interval of the tasks matching text.

Supported formats:
  csv - Comma-separated values format

Example:
  tl output --format csv > intervals.csv`,
		RunE: r.run("output", timeoutDefault),
	}
	outputCmd.Flags().StringVarP(&output.Format, "format", "f", "csv", "Output format")

	watch := handler[*WatchCommand](r.registry, "watch")
	watchCmd := &cobra.Command{
		Use:   "watch <task>",
		Short: "Live view of a task's timer",
		Long:  "Show the running interval and the total, refreshed every interval. Press s to start or stop the timer and q to quit.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("watch", timeoutNone),
	}
	watchCmd.Flags().DurationVar(&watch.Interval, "interval", time.Second, "Refresh interval")

	del := handler[*DeleteCommand](r.registry, "delete")
	deleteCmd := &cobra.Command{
		Use:   "delete <task>",
		Short: "Delete a task and its time log",
		Long:  "Delete a task and its time log. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("delete", timeoutInteractive),
	}
	deleteCmd.Flags().BoolVarP(&del.Yes, "yes", "y", false, "Do not ask for confirmation")

	r.cmd.AddCommand(
		createCmd,
		editCmd,
		listCmd,
		currentCmd,
		startCmd,
		stopCmd,
		toggleCmd,
		resumeCmd,
		showCmd,
		rowCmd,
		outputCmd,
		watchCmd,
		deleteCmd,
	)
}
