package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/nearby/internal/buildinfo"
	"github.com/dmitrijs2005/nearby/internal/client/cli"
	"github.com/dmitrijs2005/nearby/internal/client/config"
	"github.com/dmitrijs2005/nearby/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.Load()
	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app := cli.NewApp(cfg, log)
	app.Run(ctx)

}
