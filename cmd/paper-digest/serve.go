package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the paper list and chat web interface",
	Long: `Serve starts the HTTP server. GET / fetches and summarizes the newest papers
and refreshes the cache; GET /chat and POST /chat answer questions about the
cached papers. The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		srv, err := server.New(a.cfg.Server, a.digest, a.log, a.metrics)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (overrides server.host)")
	serveCmd.Flags().Int("port", 0, "listen port (overrides server.port)")
	bindFlag(serveCmd, "server.host", "host")
	bindFlag(serveCmd, "server.port", "port")

	rootCmd.AddCommand(serveCmd)
}
