// Command judgebox runs the code execution and testing HTTP service:
// it loads configuration, wires the process driver, language
// profiles, executor, and session store, then serves POST /execute
// until an interrupt or terminate signal arrives.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"judgebox/internal/config"
	"judgebox/internal/executor"
	"judgebox/internal/langprofile"
	"judgebox/internal/process"
	"judgebox/internal/session"
	httptransport "judgebox/internal/transport/http"
	"judgebox/pkg/utils/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultConfigPath = "configs/judgebox.yaml"
const defaultShutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		return
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return
	}
	defer func() { _ = logger.Sync() }()

	store := session.NewRedisStore(cfg.Redis)
	defer func() { _ = store.Close() }()

	registry := langprofile.NewRegistry(cfg.Toolchain)
	driver := process.New(time.Duration(cfg.Executor.RunTimeoutMs) * time.Millisecond)
	exec := executor.New(registry, driver, cfg.Toolchain.TempRoot, cfg.Executor, nil)

	httpServer := buildHTTPServer(cfg, store, exec)

	listener, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		logger.Error(context.Background(), "init http listener failed", zap.Error(err))
		return
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(context.Background(), "judgebox http server started", zap.String("addr", cfg.Server.Addr))
		errCh <- httpServer.Serve(listener)
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "http server stopped", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		logger.Info(context.Background(), "shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error(context.Background(), "http server shutdown failed", zap.Error(err))
	}
}

func buildHTTPServer(cfg *config.Config, store session.Store, exec *executor.Executor) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	httptransport.RegisterRoutes(router, store, exec)

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	return &http.Server{
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
	}
}
