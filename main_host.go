//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"calcboard/app"
	"calcboard/hal"
	"calcboard/hal/window"
	"calcboard/internal/buildinfo"
	"calcboard/internal/config"
)

func main() {
	cfg := config.FromEnv(os.Getenv)
	cfg.RegisterFlags(flag.CommandLine)
	showVersion := flag.Bool("version", false, "Print the version and exit.")
	flag.Parse()

	if *showVersion {
		fmt.Println(buildinfo.Name, buildinfo.Short())
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	h := hal.New(cfg.Width, cfg.Height)
	newApp := func(h hal.HAL) hal.App {
		return app.NewWithConfig(h, app.Config{Settings: *cfg})
	}

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, h, newApp, hal.HeadlessConfig{
			Enabled: true,
			Hz:      cfg.Hz,
			Ticks:   cfg.Ticks,
		}); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := window.Run(h, buildinfo.Name, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
