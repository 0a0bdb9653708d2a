package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/WillyV3/todot/internal/logging"
	"github.com/WillyV3/todot/internal/storage"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list to todot clients over the read/write line protocol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			logger := logging.New(os.Stderr, cfg.LogLevel)
			if err != nil {
				logger.Warn("config ignored", "err", err)
			}

			backend := storage.NewFileStore(cfg.DataDir)
			logger.Info("serving tasks", "file", backend.Path())
			return storage.NewServer(backend, logger).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", storage.DefaultServerAddr, "listen address")
	return cmd
}
