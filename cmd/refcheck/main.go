// Command refcheck validates the reference data files the API loads at
// startup and reports what it would serve.
package main

import (
	"fmt"
	"os"

	"yieldx/internal/config"
	"yieldx/internal/reference"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.LoadReferencePaths()

	data, err := reference.Load(cfg)
	if err != nil {
		zap.L().Error("reference data invalid", zap.Error(err))
		os.Exit(1)
	}

	regions := data.Store.Regions()
	districts := 0
	for _, region := range regions {
		obs, _ := data.Store.Districts(region)
		districts += len(obs)
	}

	fmt.Printf("regions:   %d\n", len(regions))
	fmt.Printf("districts: %d\n", districts)
	fmt.Printf("crops:     %d\n", len(data.Catalog.Records))
	fmt.Printf("prices:    %d\n", len(data.Prices))

	skipped := data.Skipped()
	fmt.Printf("skipped:   %d\n", len(skipped))
	for _, s := range skipped {
		fmt.Println("  -", s)
	}
}
