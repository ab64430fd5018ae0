package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"travelinsure/config"
	"travelinsure/ml"
)

func main() {
	configPath := flag.String("config", config.Resolve("config.yaml"), "config file path")
	modelPath := flag.String("model", "", "model artifact path, overrides the config")
	strict := flag.Bool("strict", false, "treat a library version mismatch as fatal")
	flag.Parse()

	path := *modelPath
	if path == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		path = cfg.Model.Path
	}

	os.Exit(inspect(path, *strict))
}

func inspect(path string, strict bool) int {
	result, err := ml.LoadModel(path)
	if err != nil {
		var loadErr *ml.LoadError
		if errors.As(err, &loadErr) {
			fmt.Printf("status:          fatal (%v)\n", loadErr.Err)
		}
		fmt.Printf("error:           %v\n", err)
		return 1
	}

	info := result.Info
	fmt.Printf("path:            %s\n", path)
	fmt.Printf("format:          %s v%d\n", info.Format, info.FormatVersion)
	fmt.Printf("model type:      %s\n", info.ModelType)
	fmt.Printf("library version: %s (runtime %s)\n", info.LibraryVersion, ml.LibraryVersion)
	if info.TrainedAt != nil {
		fmt.Printf("trained at:      %s\n", info.TrainedAt.Format(time.RFC3339))
	}
	if info.Description != "" {
		fmt.Printf("description:     %s\n", info.Description)
	}
	names := info.FeatureNames
	if len(names) == 0 {
		names = ml.FeatureNames()
	}
	fmt.Printf("features:        %s\n", strings.Join(names, ", "))
	for _, column := range ml.CategoricalColumns() {
		fmt.Printf("  %-20s %s\n", column, formatCodes(ml.Categories(column)))
	}

	switch result.Status {
	case ml.LoadVersionMismatch:
		fmt.Printf("status:          %s (artifact %s, runtime %s)\n",
			result.Status, result.Mismatch.ArtifactVersion, result.Mismatch.RuntimeVersion)
		if strict {
			return 2
		}
	default:
		fmt.Printf("status:          %s\n", result.Status)
	}
	return 0
}

func formatCodes(categories []string) string {
	parts := make([]string, len(categories))
	for i, category := range categories {
		parts[i] = fmt.Sprintf("%d=%s", i, category)
	}
	return strings.Join(parts, " ")
}
