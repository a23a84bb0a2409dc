package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/internal/config"
	"github.com/gaze-network/crowdsale/modules/crowdsale"
	"github.com/gaze-network/crowdsale/pkg/automaxprocs"
	"github.com/gaze-network/crowdsale/pkg/errorhandler"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/gaze-network/crowdsale/pkg/middleware/requestcontext"
	"github.com/gaze-network/crowdsale/pkg/middleware/requestlogger"
	"github.com/gaze-network/crowdsale/pkg/reportingclient"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Register Modules
var Modules = do.Package(
	do.Lazy(crowdsale.New),
)

func NewRunCommand() *cobra.Command {
	// Create command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start crowdsale service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runHandler(cmd, args)
		},
	}

	// Add local flags
	flags := runCmd.Flags()
	flags.Int("port", 0, "HTTP server port. E.g. `8080`")

	// Bind flags to configuration
	config.BindPFlag("http_server.port", flags.Lookup("port"))

	return runCmd
}

const (
	shutdownTimeout = 60 * time.Second
)

func runHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Validate inputs and configurations
	{
		if conf.HTTPServer.Port <= 0 || conf.HTTPServer.Port > 65535 {
			return errors.Wrapf(errs.InvalidArgument, "invalid http_server.port %d", conf.HTTPServer.Port)
		}
	}

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, slogx.String("module", "crowdsale"))

	injector := do.New(Modules)
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	// Initialize reporting client
	do.Provide(injector, func(i do.Injector) (*reportingclient.ReportingClient, error) {
		conf := do.MustInvoke[config.Config](i)
		if conf.Reporting.Disabled {
			return nil, nil
		}

		reportingClient, err := reportingclient.New(conf.Reporting)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "invalid reporting configuration")
			}
			return nil, errors.Wrap(err, "can't create reporting client")
		}
		return reportingClient, nil
	})

	// Initialize HTTP server
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		app := fiber.New(fiber.Config{
			AppName:               "Crowdsale",
			ErrorHandler:          errorhandler.NewHTTPErrorHandler(),
			DisableStartupMessage: true,
		})
		app.
			Use(favicon.New()).
			Use(cors.New()).
			Use(requestid.New()).
			Use(requestcontext.New(
				requestcontext.WithRequestId(),
				requestcontext.WithClientIP(conf.HTTPServer.RequestIP),
				requestcontext.WithCaller(conf.HTTPServer.CallerHeader),
			)).
			Use(requestlogger.New(conf.HTTPServer.Logger)).
			Use(fiberrecover.New(fiberrecover.Config{
				EnableStackTrace: true,
				StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
					buf := make([]byte, 1024) // bufLen = 1024
					buf = buf[:runtime.Stack(buf, false)]
					logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", errors.Newf("panic: %v", e), slog.String("stacktrace", string(buf)))
				},
			})).
			Use(compress.New(compress.Config{
				Level: compress.LevelDefault,
			}))

		// Health check
		app.Get("/", func(c *fiber.Ctx) error {
			return errors.WithStack(c.SendStatus(http.StatusOK))
		})

		return app, nil
	})

	// Initialize crowdsale module, it mounts its API on the HTTP server
	if _, err := do.Invoke[*crowdsale.Crowdsale](injector); err != nil {
		return errors.Wrap(err, "can't init crowdsale module")
	}

	httpServer := do.MustInvoke[*fiber.App](injector)
	eg, ectx := errgroup.WithContext(ctx)

	// Run API server
	eg.Go(func() error {
		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			return errors.Wrap(err, "error during running HTTP server")
		}
		return nil
	})

	// Gracefully stop the server on interrupt signal, or when it stopped by itself
	eg.Go(func() error {
		<-ectx.Done()
		logger.InfoContext(ctx, "Stopping HTTP server...")
		if err := httpServer.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return errors.Wrap(err, "failed to shutdown HTTP server")
		}
		return nil
	})

	logger.InfoContext(ctx, "Crowdsale service started")

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		<-ctx.Done()
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	runErr := eg.Wait()
	if err := injector.Shutdown(); err != nil {
		logger.ErrorContext(ctx, "Failed while gracefully shutting down", err)
	}
	return errors.WithStack(runErr)
}
