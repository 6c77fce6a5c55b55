package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/server"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve question files and the admin API over HTTP",
		Long: "Serve exposes stored question files at /files/{name}, so another\n" +
			"quizz can use this one as its network source (QUIZZ_SOURCE_URL),\n" +
			"plus a JSON admin API under /api.",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, nil)
			if err != nil {
				return err
			}
			defer d.Close()

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = d.settings.HTTPAddr
			}
			origins, _ := cmd.Flags().GetStringSlice("cors-origin")
			quiet, _ := cmd.Flags().GetBool("quiet")

			handler := server.New(d.files, d.configs, d.store.EventRepo(), server.Options{
				AllowedOrigins: origins,
				RequestLog:     !quiet,
			})
			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
	c.Flags().String("addr", "", "Listen address (overrides QUIZZ_HTTP_ADDR, default 127.0.0.1:8080)")
	c.Flags().StringSlice("cors-origin", nil, "Allowed CORS origin (repeatable, default any)")
	c.Flags().Bool("quiet", false, "Disable request logging")
	return c
}
