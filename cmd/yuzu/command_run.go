package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/yuzulang/yuzu"
	gen "github.com/yuzulang/yuzu/generator"
)

// RunCmd represents the run command
type RunCmd struct {
	File  string `arg:"" optional:"" help:"Source file to evaluate" type:"path"`
	Expr  string `short:"e" help:"Evaluate an inline expression instead of a file"`
	Trace bool   `help:"Print the access trace after evaluation"`
}

// Run executes the run command
func (cmd *RunCmd) Run(ctx *Context) error {
	config, err := yuzu.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	applyColorMode(config.Output.Color)

	uri := "<expr>"
	source := cmd.Expr

	if source == "" {
		if cmd.File == "" {
			return fmt.Errorf("%w: pass a source file or --expr", yuzu.ErrNoSourcesFound)
		}

		data, err := os.ReadFile(cmd.File)
		if err != nil {
			return fmt.Errorf("%w: %s", yuzu.ErrSourceNotFound, cmd.File)
		}

		uri = cmd.File
		source = string(data)
	}

	frontend := yuzu.NewFrontend(config)

	result, err := frontend.Run(uri, source)
	if err != nil {
		return err
	}

	if !ctx.Quiet {
		for _, value := range result.Values {
			fmt.Printf("%v\n", value)
		}
	}

	if cmd.Trace || config.Eval.Trace {
		for _, event := range result.Trace {
			color.Cyan("trace: %s", event)
		}
	}

	if ctx.Verbose {
		names := make([]string, 0, len(result.Vars))
		for name := range result.Vars {
			names = append(names, string(name))
		}

		sort.Strings(names)

		for _, name := range names {
			ctx.Logger.Debugf("var %s = %v", name, result.Vars[gen.Name(name)])
		}
	}

	return nil
}
