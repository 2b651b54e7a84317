package main

import (
	"context"
	"log"
	"os"

	"github.com/ekazarova/rolodex/internal/buildinfo"
	"github.com/ekazarova/rolodex/internal/cli"
	"github.com/ekazarova/rolodex/internal/config"
	"github.com/ekazarova/rolodex/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(cfg.SlogLevel())

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
