package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dehaleesankr/folio/internal/exchange"
	"github.com/dehaleesankr/folio/internal/modal"
	"github.com/dehaleesankr/folio/internal/render"
	"github.com/dehaleesankr/folio/internal/server"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort    int
	serveSiteDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio modal over HTTP",
	Long: `Starts the HTTP server. The modal is reachable at /ws/modal (WebSocket)
and the one-shot draft helper at POST /api/draft. When server.site_dir is set
the portfolio's static files are served at /.

With database.enabled and server.admin_token set, logged exchanges can be
browsed at /api/exchanges using a bearer token.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&serveSiteDir, "site", "", "static site directory (overrides server.site_dir)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	scfg := server.Config{
		Port:           a.cfg.Server.Port,
		SiteDir:        a.cfg.Server.SiteDir,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
	}
	if cmd.Flags().Changed("port") {
		scfg.Port = servePort
	}
	if cmd.Flags().Changed("site") {
		scfg.SiteDir = serveSiteDir
	}

	srv := server.New(scfg, a.logger)

	modal.New(a.provider, modal.Options{
		Profile:        a.profile(),
		Renderer:       render.New(""),
		Recorder:       a.recorder(),
		Logger:         a.logger,
		Timeout:        a.cfg.LLM.Timeout,
		AllowedOrigins: scfg.AllowedOrigins,
	}).RegisterRoutes(srv.Router())

	if a.store != nil {
		if a.cfg.Server.AdminToken == "" {
			a.logger.Info("exchange log routes disabled: server.admin_token is not set")
		}
		exchange.RegisterRoutes(srv.Router(), a.store, a.cfg.Server.AdminToken)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "folio listening on http://localhost%s (provider=%s)\n", srv.Addr(), a.provider.Name())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("shutdown", zap.Error(err))
			return err
		}
		return nil
	})
	return g.Wait()
}
