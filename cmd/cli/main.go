package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/shadowbtc/shadowvault/internal/buildinfo"
	"github.com/shadowbtc/shadowvault/internal/client/cli"
	"github.com/shadowbtc/shadowvault/internal/client/config"
	"github.com/shadowbtc/shadowvault/internal/flagx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flagx.Positional(os.Args[1:], config.ValueFlags)
	if len(args) == 0 {
		buildinfo.PrintBuildData(os.Stdout)
	}

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx, args); err != nil {
		color.Red("Error: %v", err)
		stop()
		os.Exit(1)
	}
}
