package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/jacksmith/tn/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the todo and note pages over HTTP",
	Long: `Start a web server with the todo list at / and /todos and the notes
page, with a drawing surface, at /notes.

Changes made by other tn commands show up on the next page load when
the file backend is used.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveListen string

// shutdownTimeout bounds how long in-flight requests get on Ctrl-C.
const shutdownTimeout = 5 * time.Second

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (default from .tnconfig.yaml)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv, err := web.NewServer(ws.todos, ws.notes, ws.session(),
		web.WithLogger(logger.With("component", "web")),
		web.WithPageSize(ws.cfg.PageSize))
	if err != nil {
		return err
	}
	defer srv.Close()

	if err := srv.Watch(ctx); err != nil {
		logger.Info("external changes will not be picked up", "reason", err)
	}

	addr := serveListen
	if addr == "" {
		addr = ws.cfg.Listen
	}
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		err := httpSrv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errc <- err
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		logger.Error("http server stopped", "error", err)
	}))

	fmt.Printf("Serving tn on http://%s (Ctrl-C to stop)\n", displayAddr(addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
