package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/libdesk/internal/api"
	"github.com/blackwell-systems/libdesk/internal/config"
	"github.com/blackwell-systems/libdesk/internal/library"
	"github.com/blackwell-systems/libdesk/internal/localstore"
	"github.com/blackwell-systems/libdesk/internal/state"
	"github.com/blackwell-systems/libdesk/internal/tui"
	"github.com/blackwell-systems/libdesk/internal/util"
)

var (
	cfg   *config.Config
	store *state.Store
	svc   *library.Service

	// stdout and stdin are swapped out by tests.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagJSON          bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "libdesk",
		Short: "Browse and manage a library from the terminal",
		Long: `libdesk is a client for the library service: search the catalog,
borrow and return books, and see the dashboard for your role.

The signed-in session is kept on disk between runs.

Run 'libdesk' with no arguments to launch the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runHub(cmd.Context())
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/libdesk/config.yml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		if cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}
		return setup()
	}

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoAmICmd(),
		newBooksCmd(),
		newBorrowCmd(),
		newReturnCmd(),
		newBorrowingsCmd(),
		newDashboardCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return root
}

// setup loads config and builds the service every command runs against.
func setup() error {
	if flagConfig != "" {
		if err := os.Setenv("LIBDESK_CONFIG", flagConfig); err != nil {
			return err
		}
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	util.SetupLogger(stderr, cfg.LogLevel())

	storage, err := localstore.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening session storage: %w", err)
	}
	client, err := api.New(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		_ = storage.Close()
		return fmt.Errorf("api client: %w", err)
	}
	store = state.New(storage)
	svc = library.New(client, store)
	return nil
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("error:"), describeErr(err))
		os.Exit(1)
	}
}

// run executes one command line and releases the store afterwards.
func run(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer func() {
		if store != nil {
			_ = store.Close()
			store, svc = nil, nil
		}
	}()
	return root.ExecuteContext(ctx)
}

// describeErr turns session errors into a next step for the user.
func describeErr(err error) string {
	switch {
	case errors.Is(err, library.ErrSessionExpired):
		return "session expired, run 'libdesk login'"
	case errors.Is(err, library.ErrNotLoggedIn):
		return "not logged in, run 'libdesk login'"
	case errors.Is(err, api.ErrNetwork) && cfg != nil:
		return fmt.Sprintf("%v (is the library API reachable at %s?)", err, cfg.API.BaseURL)
	}
	return err.Error()
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Fprintln(stdout, color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Fprintln(stdout, color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(label, value string) {
	fmt.Fprintf(stdout, "  %-14s %s\n", color.CyanString(label+":"), value)
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// confirm asks before a destructive action. Without a terminal the caller
// must pass --yes.
func confirm(prompt string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if flagNoInteractive || !util.IsStdinTTY() {
		return false, errors.New("confirmation required, pass --yes")
	}
	return util.Confirm(prompt, stdin, stdout), nil
}
