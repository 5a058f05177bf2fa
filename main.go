// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-gonic/gin"
	"techevents-web/config"
	"techevents-web/logger"
	"techevents-web/metrics"
	"techevents-web/routes"
	"techevents-web/services"
	"techevents-web/session"
)

// serviceName names the X-Ray segments of this process.
const serviceName = "techevents-web"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitLogger(cfg.LogDir); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	logger.SetLogLevel(cfg.Environment)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	handler, err := setupHandler(cfg, newMetrics(cfg))
	if err != nil {
		logger.Error.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info.Printf("Listening on :%s (API %s)", cfg.Port, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error.Printf("Shutdown: %v", err)
	}
}

// setupHandler builds the API client, session store and router. With
// tracing on, inbound requests and outbound API calls are wrapped in X-Ray.
func setupHandler(cfg *config.Config, pub metrics.Publisher) (http.Handler, error) {
	httpClient := &http.Client{}
	if cfg.TracingEnabled {
		httpClient = xray.Client(httpClient)
	}
	api := services.NewAPIClient(cfg.APIBaseURL, httpClient)

	router, err := routes.NewRouter(cfg, routes.Deps{
		Events:        api,
		Profiles:      api,
		Auth:          api,
		Metrics:       pub,
		Store:         session.NewStore([]byte(cfg.SessionSecret)),
		TemplatesGlob: templatesGlob(cfg),
	})
	if err != nil {
		return nil, err
	}

	if cfg.TracingEnabled {
		logger.Info.Println("X-Ray tracing enabled")
		return xray.Handler(xray.NewFixedSegmentNamer(serviceName), router), nil
	}
	return router, nil
}

// newMetrics returns the CloudWatch publisher when enabled, else a no-op.
func newMetrics(cfg *config.Config) metrics.Publisher {
	if !cfg.MetricsEnabled {
		return metrics.Nop{}
	}
	pub, err := metrics.NewCloudWatchPublisher(cfg.AWSRegion, cfg.MetricsNamespace)
	if err != nil {
		logger.Warn.Printf("CloudWatch unavailable, metrics disabled: %v", err)
		return metrics.Nop{}
	}
	return pub
}

// templatesGlob prefers TEMPLATES_DIR and falls back to the templates next
// to this source file.
func templatesGlob(cfg *config.Config) string {
	if cfg.TemplatesDir != "" {
		return filepath.Join(cfg.TemplatesDir, "*.html")
	}
	_, b, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(b), "templates", "*.html")
}
