package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gitink/internal/config"
	"gitink/internal/errors"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cfg := config.New()
	cfg.VersionInfo = config.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	// The config file must be merged before cobra registers flags, since
	// flag defaults are taken from the merged values. Scan the raw args
	// for --config rather than waiting for flag parsing.
	if err := loadConfigFile(cfg, os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
	cfg.LoadFromEnvironment()

	app := NewApp(AppOptions{Config: cfg})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(app)
	err := root.ExecuteContext(ctx)
	_ = app.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfigFile merges a TOML config file into cfg. An explicitly named
// file must exist; the default gitink.toml is optional.
func loadConfigFile(cfg *config.Config, args []string) error {
	path, explicit := configFileArg(args)
	if !explicit {
		path = config.DefaultConfigFile
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	return cfg.LoadFile(path)
}

// configFileArg extracts the value of --config from raw arguments.
func configFileArg(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1], true
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v, true
		}
	}
	return "", false
}
