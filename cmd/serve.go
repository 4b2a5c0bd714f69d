package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/commanderxa/alphalabs/internal/config"
	"github.com/commanderxa/alphalabs/internal/progress"
	"github.com/commanderxa/alphalabs/internal/server"
	"github.com/commanderxa/alphalabs/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with live reload",
	Long: `Builds the site, serves the export under the configured base path and,
unless watching is disabled, rebuilds on every change to the content or
asset directories. Open pages reload after each successful rebuild.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "override the port to listen on")
	serveCmd.Flags().Bool("open", false, "open the site in a browser")
	serveCmd.Flags().Bool("no-watch", false, "do not rebuild on changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		cfg.Open = true
	}
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch = false
	}
	logger := setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := site.NewGenerator(site.Options{
		OutputDir:   cfg.OutputDir,
		Base:        siteBase(cfg),
		Assets:      os.DirFS(cfg.AssetDir),
		AssetRoot:   cfg.AssetDir,
		ContentRoot: cfg.ContentDir,
		Exclude:     cfg.Exclude,
		LiveReload:  server.LiveReloadPath,
		Logger:      logger,
		Reporter:    progress.Nop{},
	})
	if err != nil {
		return err
	}

	// The first build must succeed; there is nothing to serve otherwise.
	store, err := loadStore(cfg)
	if err != nil {
		return err
	}
	res, err := gen.Build(ctx, store)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	srv := server.New(server.Config{
		Port:     cfg.Port,
		Dir:      cfg.OutputDir,
		BasePath: cfg.BasePath,
		AllowAll: cfg.AllowAllOrigins,
	}, logger)
	buildSucceeded(srv, res)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if cfg.Watch {
		if err := startWatcher(ctx, cfg, gen, srv, logger); err != nil {
			logger.Warn("live reload disabled", "error", err)
		}
	}

	fmt.Printf("Serving at %s (press Ctrl+C to stop)\n", srv.URL())
	if cfg.Open {
		if err := server.OpenBrowser(srv.URL()); err != nil {
			logger.Warn("could not open browser", "error", err)
		}
	}

	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving site: %w", err)
		}
	}

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startWatcher rebuilds the export whenever content or assets change. A
// failed rebuild keeps the previous export and is reported to open pages.
func startWatcher(ctx context.Context, cfg *config.Config, gen *site.Generator, srv *server.Server, logger *slog.Logger) error {
	w, err := site.NewWatcher([]string{cfg.ContentDir, cfg.AssetDir}, []string{cfg.OutputDir}, site.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	go func() {
		err := w.Run(ctx, func(ctx context.Context, changed []string) {
			logger.Info("rebuilding", "changed", len(changed))
			store, err := loadStore(cfg)
			if err == nil {
				var res *site.Result
				res, err = gen.Build(ctx, store)
				if err == nil {
					buildSucceeded(srv, res)
					return
				}
			}
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Error("rebuild failed", "error", err)
			srv.Metrics().BuildFailed()
			srv.Hub().BuildFailed(err)
		})
		if err != nil {
			logger.Error("watcher stopped", "error", err)
		}
	}()
	return nil
}

func buildSucceeded(srv *server.Server, res *site.Result) {
	srv.Metrics().BuildSucceeded(len(res.Pages), len(res.Assets), res.Duration)
	srv.Hub().BuildSucceeded(res.BuildID)
}
