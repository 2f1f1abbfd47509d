//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"regis3d/app"
	"regis3d/demo"
	"regis3d/hal"
	"regis3d/internal/buildinfo"
	"regis3d/internal/config"
	"regis3d/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("regis3d", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: regis3d [flags] <demo 1..4>\n\n")
		fs.PrintDefaults()
	}
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if flags.Version {
		fmt.Fprintln(stdout, buildinfo.String())
		return 0
	}

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if flags.SaveConfig != "" {
		if err := cfg.SaveTo(flags.SaveConfig); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, demo.Usage)
		return 1
	}
	id := demo.Parse(fs.Arg(0))

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logger.Sync()
	log := logger.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hal.New(hal.HostConfig{
		FlashPath: cfg.Models.Flash,
		Width:     cfg.Viewport.Width,
		Height:    cfg.Viewport.Height,
	})

	host, err := app.NewHost(h, cfg, id, log)
	if err != nil {
		log.Error("setup failed", zap.Error(err))
		return 1
	}
	host.Title = fmt.Sprintf("regis3d %s (%s)", id, buildinfo.Short())

	if err := host.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("render failed", zap.Error(err))
		return 1
	}
	return 0
}
