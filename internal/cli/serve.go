package cli

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

	"github.com/timmy/reconlens/internal/api"
	"github.com/timmy/reconlens/internal/api/handler"
	"github.com/timmy/reconlens/internal/api/middleware"
	"github.com/timmy/reconlens/internal/service"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(global *globalOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the galleries and the curation API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(global)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return runServe(a)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "listen port (default from config)")
	return cmd
}

func runServe(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	siteCfg := handler.SiteHandlerConfig{
		Catalog: a.catalog,
		Root:    a.cfg.Output.Root,
		Curator: service.NewCurator(a.log),
	}
	ledger, err := a.openLedger()
	if err != nil {
		return err
	}
	if ledger != nil {
		siteCfg.Runs = ledger
	}
	publisher, err := a.newPublisher(ctx)
	if err != nil {
		return err
	}
	siteCfg.Publisher = publisher

	router := api.SetupRouter(
		handler.NewSiteHandler(siteCfg),
		handler.NewHealthHandler(a.catalog.Len(), ledger != nil),
		api.RouterConfig{
			Mode: a.cfg.Server.Mode,
			Root: a.cfg.Output.Root,
			CORS: middleware.CORSConfig{
				AllowedOrigins:  a.cfg.Server.CORS.AllowedOrigins,
				AllowAllOrigins: a.cfg.Server.CORS.AllowAllOrigins,
			},
		},
		a.log,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("port", a.cfg.Server.Port).WithField("mode", a.cfg.Server.Mode).Info("Starting gallery server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.log.Info("Server exited")
	return nil
}
