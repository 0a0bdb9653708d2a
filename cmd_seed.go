package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/WillyV3/todot/internal/logging"
	"github.com/WillyV3/todot/internal/storage"
	"github.com/WillyV3/todot/internal/todo"
)

func newSeedCmd(root *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a starter task list that walks through the key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				logging.New(cmd.ErrOrStderr(), cfg.LogLevel).Warn("config ignored", "err", err)
			}
			return SeedCommand(cmd.Context(), storage.New(cfg), cmd.InOrStdin(), cmd.OutOrStdout(), yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "overwrite an existing task list without asking")
	return cmd
}

// SeedCommand writes the starter tasks through p. A non-empty list is only
// replaced after the user confirms, unless yes is set.
func SeedCommand(ctx context.Context, p todo.Persister, in io.Reader, out io.Writer, yes bool) error {
	existing, err := p.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	if len(existing) > 0 && !yes {
		fmt.Fprintf(out, "Task list already has %d tasks. Overwrite? (y/N): ", len(existing))
		var response string
		fmt.Fscanln(in, &response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	tasks := SeedTasks()
	if err := p.Save(ctx, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}

	done := 0
	for _, task := range tasks {
		if task.Completed {
			done++
		}
	}

	fmt.Fprintf(out, "✓ Seeded %s\n", storage.Describe(p))
	fmt.Fprintf(out, "  Total tasks: %d\n", len(tasks))
	fmt.Fprintf(out, "  Completed: %d\n", done)
	fmt.Fprintln(out, "\nRun 'todot' to view your tasks!")

	return nil
}
