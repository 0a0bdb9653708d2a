// Command todot is a terminal task list.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/WillyV3/todot/internal/config"
	"github.com/WillyV3/todot/internal/logging"
	"github.com/WillyV3/todot/internal/storage"
	"github.com/WillyV3/todot/internal/todo"
	"github.com/WillyV3/todot/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	flags      config.Flags
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath, o.flags)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "todot",
		Short:         "A keyboard driven task list for the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default <user config dir>/todot/config.toml)")
	pf.StringVar(&opts.flags.ServerAddress, "server", "", "sync with the todot peer at this address instead of the local file")
	pf.StringVar(&opts.flags.DataDir, "data-dir", "", "directory holding db.json and the log file")
	pf.StringVar(&opts.flags.LogLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newServeCmd(opts), newSeedCmd(opts))
	return cmd
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	cfg, cfgErr := opts.load()

	logger, closer, err := logging.Open(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}
	logger = withSession(logger)

	persister := storage.New(cfg)
	uiOpts := []ui.Option{
		ui.WithLogger(logger),
		ui.WithSource(storage.Describe(persister)),
	}
	if cfgErr != nil {
		logger.Error("config ignored", "err", cfgErr)
		uiOpts = append(uiOpts, ui.WithStatus(fmt.Sprintf("Config ignored: %v", cfgErr), true))
	}

	store, err := todo.Open(ctx, persister)
	if err != nil {
		logger.Error("load tasks", "err", err)
		uiOpts = append(uiOpts, ui.WithStatus(fmt.Sprintf("Error: %v", err), true))
	}
	logger.Info("starting", "storage", storage.Describe(persister), "tasks", store.Len())

	err = ui.Run(ctx, store, uiOpts...)
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// withSession tags every line logged during one run with a fresh session ID.
func withSession(logger *log.Logger) *log.Logger {
	return logger.With("session", uuid.NewString())
}
