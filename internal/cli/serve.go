package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crategraph/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <snapshot.json>",
		Short: "Expose a snapshot over HTTP",
		Long: `Serve loads a snapshot and exposes it over HTTP: the raw graph, its
topological order, reverse dependency lookups, and a DOT rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(g, logger).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("Serving snapshot", "addr", addr, "packages", g.Len())
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
