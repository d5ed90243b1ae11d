package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-coach/internal/config"
	"github.com/lox/holdem-coach/internal/session"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config  string `short:"c" help:"Path to the HCL config file" default:"${config_file}" type:"path"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `name:"no-color" help:"Disable coloured output"`
}

// load reads and validates the config file and builds the root logger.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.LogLevel(),
	})
	if g.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return cfg, logger, nil
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play against computer opponents"`
	Simulate SimulateCmd      `cmd:"" help:"Play bots against bots and report win rates"`
	Evaluate EvaluateCmd      `cmd:"" help:"Evaluate the best hand from 5 to 7 cards"`
	Quiz     QuizCmd          `cmd:"" help:"Practise hand rankings"`
	History  HistoryCmd       `cmd:"" help:"Summarise a saved hand history"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Learn and practise Texas Hold'em in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
			"human_name":  session.HumanName,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
