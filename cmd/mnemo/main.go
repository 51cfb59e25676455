package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/mnemo/internal/cli"
	"github.com/julianstephens/mnemo/internal/config"
	"github.com/julianstephens/mnemo/internal/constants"
	errs "github.com/julianstephens/mnemo/internal/errors"
	"github.com/julianstephens/mnemo/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Serve       cli.ServeCmd       `cmd:"" help:"Run the HTTP server." default:"1"`
	Init        cli.InitCmd        `cmd:"" help:"Initialize mnemo storage."`
	Doctor      cli.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Export      cli.ExportCmd      `cmd:"" help:"Export events as JSON lines."`
	Summarize   cli.SummarizeCmd   `cmd:"" help:"Print an offline summary of one day's events."`
	ImportDiary cli.ImportDiaryCmd `cmd:"" name:"import-diary" help:"Import markdown diary notes into the diary log."`
	Key         struct {
		Set    cli.KeySetCmd    `cmd:"" help:"Store the completion API key in the OS keyring."`
		Delete cli.KeyDeleteCmd `cmd:"" help:"Remove the completion API key from the OS keyring."`
	} `cmd:"" help:"Manage the completion API key."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal event and diary logging service"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, Dir: cfg.Log.Dir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	store, err := cli.NewStore(cfg)
	if err != nil {
		errs.Fatal(err)
	}

	errs.Fatal(ctx.Run(&cli.Context{Config: cfg, Store: store}))
}
