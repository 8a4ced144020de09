package cli

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ux-career-assessment/internal/app"
	"ux-career-assessment/internal/config"
	"ux-career-assessment/internal/logger"
	"ux-career-assessment/internal/results"
	transport "ux-career-assessment/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the assessment server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	contentCache := newCache(cfg, b.kv, log)
	if removed := contentCache.ClearExpired(ctx); removed > 0 {
		log.Info("startup cache sweep", zap.Int("removed", removed))
	}

	generator, err := newGenerator(cfg, log)
	if err != nil {
		return err
	}
	loader := app.NewContentLoader(contentCache, generator, loaderConfig(cfg, log))
	service := app.NewAssessmentService(b.bank,
		results.NewStore(b.kv, results.WithLogger(log)),
		app.WithLogger(log),
		app.WithWarmer(loader),
	)

	if strings.HasPrefix(strings.ToLower(cfg.Log.Mode), "prod") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := transport.NewRouter(transport.RouterConfig{
		AssessmentHandler: transport.NewAssessmentHandler(service, loader, log),
		WSHandler:         transport.NewWSHandler(service, loader, log),
		AllowOrigins:      cfg.Server.AllowOrigins,
		Logger:            log,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // covers the slowest full content load
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting assessment service", zap.String("addr", server.Addr), zap.String("generator", cfg.Content.Generator))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		log.Error("failed to start server", zap.Error(err))
		return err
	case <-ctx.Done():
		log.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	service.Wait()
	return err
}
