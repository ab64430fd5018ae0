package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"travelinsure/config"
	"travelinsure/logging"
	"travelinsure/ml"
	"travelinsure/prompt"
)

func main() {
	configPath := flag.String("config", config.Resolve("config.yaml"), "config file path")
	modelPath := flag.String("model", "", "model artifact path, overrides the config")
	once := flag.Bool("once", false, "run a single prediction and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}

	// 交互模式下终端只输出警告以上日志
	if cfg.Log.File == "" {
		cfg.Log.Level = "warn"
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	predictor, err := ml.OpenPredictor(cfg.Model.Path, cfg.Model.StrictVersion, logger)
	if err != nil {
		logger.Fatal("failed to load model", zap.String("path", cfg.Model.Path), zap.Error(err))
	}

	p := prompt.New(os.Stdin, os.Stdout)
	for {
		record, err := p.ReadRecord()
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if err != nil {
			logger.Fatal("failed to read answers", zap.Error(err))
		}

		prediction, err := predictor.Predict(record)
		if err != nil {
			logger.Error("prediction failed", zap.Error(err))
			os.Exit(1)
		}
		p.PrintResult(prediction)

		if *once {
			return
		}
		fmt.Println()
	}
}
