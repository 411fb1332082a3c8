package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	Logger  *logrus.Logger
}

// CLI represents the command-line interface
var CLI struct {
	Config  string `help:"Configuration file path" default:"yuzu.yaml"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Suppress output" short:"q"`

	Parse   ParseCmd   `cmd:"" help:"Parse sources and dump the resolved tree"`
	Tokens  TokensCmd  `cmd:"" help:"Dump the token stream of a source"`
	Run     RunCmd     `cmd:"" help:"Compile and evaluate a source with the reference evaluator"`
	Watch   WatchCmd   `cmd:"" help:"Watch sources and reparse on change"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("Yuzu v0.1.0")
	return nil
}

func newLogger(verbose, quiet bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if quiet {
		logger.SetLevel(logrus.ErrorLevel)
	}

	return logger
}

func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

func main() {
	ctx := kong.Parse(&CLI)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Logger:  newLogger(CLI.Verbose, CLI.Quiet),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
