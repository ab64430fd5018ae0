package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"travelinsure/config"
	qhttp "travelinsure/http"
	"travelinsure/logging"
	"travelinsure/ml"
	"travelinsure/monitoring"
)

func main() {
	// 1. 加载 .env 与配置
	envErr := godotenv.Load()

	cfg, err := config.Load(config.Resolve("config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. 初始化日志
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if envErr != nil {
		logger.Warn(".env not loaded, using config and process environment", zap.Error(envErr))
	}

	// 3. 加载模型（仅一次）
	predictor, err := ml.OpenPredictor(cfg.Model.Path, cfg.Model.StrictVersion, logger)
	if err != nil {
		logger.Fatal("Failed to load model", zap.String("path", cfg.Model.Path), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := monitoring.NewMetricsCollector()

	// 4. 监控模型文件变化
	if cfg.Model.Watch {
		watcher, err := monitoring.NewArtifactWatcher(cfg.Model.Path, logger)
		if err != nil {
			logger.Warn("Artifact watcher disabled", zap.Error(err))
		} else {
			watcher.OnChange(func(fsnotify.Op) {
				metrics.IncrCounter(monitoring.MetricArtifactChangesTotal, 1)
			})
			watcher.Start(ctx)
			defer watcher.Close()
		}
	}

	// 5. 启动HTTP服务
	handler := qhttp.NewHandler(predictor, metrics, logger)
	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		AllowedOrigins: cfg.Http.AllowedOrigins,
		MaxBodyBytes:   cfg.Http.MaxBodyBytes,
	}, handler, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 6. 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	if err := server.Stop(); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Exiting")
}
