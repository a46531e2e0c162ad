package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/syncer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/server"
)

func newServeCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the relay HTTP server and the background sync job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ListenAddr, "listen", opts.ListenAddr, "HTTP listen address")
	cmd.Flags().IntVar(&opts.SyncInterval, "sync-interval-minutes", opts.SyncInterval, "Minutes between background sync runs")
	cmd.Flags().IntVar(&opts.VerifyWindow, "verify-window", opts.VerifyWindow, "Trailing blocks checked per chain during verification")
	return cmd
}

func runServe(ctx context.Context, opts *RootOptions) error {
	a, err := buildApp(opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	syncHandle := syncer.NewHandle("sync", func(ctx context.Context) error {
		a.syncer.RunSyncJob(ctx)
		return nil
	}, a.logger)
	syncHandle.Start(time.Duration(opts.SyncInterval) * time.Minute)
	defer syncHandle.Stop()

	// Block verification only runs when started through the automation
	// endpoint.
	verifyHandle := syncer.NewHandle("block-verification", func(ctx context.Context) error {
		result, err := a.verify.VerifyRecent(ctx, opts.VerifyWindow)
		if err != nil {
			return err
		}
		if !result.Clean() {
			a.logger.Warn("block verification found issues", "result", result)
		}
		return nil
	}, a.logger)
	defer verifyHandle.Stop()

	srv := server.New(a.relay, a.transfers, a.rules, a.syncer, a.stats, a.fleet, verifyHandle, a.logger)
	httpServer := &http.Server{
		Addr:              opts.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", opts.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
