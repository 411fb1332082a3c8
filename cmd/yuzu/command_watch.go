package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/yuzulang/yuzu"
)

// WatchCmd represents the watch command
type WatchCmd struct {
	Dir    string `arg:"" optional:"" default:"." help:"Directory to watch" type:"path"`
	Format string `help:"Output format (text, tree, json); overrides the config"`
}

// Run executes the watch command. It reparses a source whenever it changes,
// debouncing bursts of events from editors that write in multiple steps.
func (cmd *WatchCmd) Run(ctx *Context) error {
	config, err := yuzu.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	applyColorMode(config.Output.Color)

	format := config.Output.Format
	if cmd.Format != "" {
		format = cmd.Format
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cmd.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.Dir, err)
	}

	frontend := yuzu.NewFrontend(config)
	parseCmd := &ParseCmd{}

	// Initial pass over everything already present.
	if err := cmd.parseAll(ctx, frontend, parseCmd, config, format); err != nil {
		ctx.Logger.Debugf("initial parse: %v", err)
	}

	if !ctx.Quiet {
		color.Blue("Watching %s for %s changes (Ctrl-C to stop)", cmd.Dir, strings.Join(config.Watch.Extensions, ", "))
	}

	var (
		timer   *time.Timer
		pending = map[string]bool{}
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C
		}

		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if !hasExtension(event.Name, config.Watch.Extensions) {
				continue
			}

			pending[event.Name] = true

			if timer == nil {
				timer = time.NewTimer(config.Watch.Debounce)
			} else {
				timer.Reset(config.Watch.Debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			ctx.Logger.Warnf("watch: %v", err)
		case <-timerC:
			timer = nil

			for file := range pending {
				delete(pending, file)
				cmd.parseFile(ctx, frontend, parseCmd, file, format)
			}
		}
	}
}

func (cmd *WatchCmd) parseAll(ctx *Context, frontend *yuzu.Frontend, parseCmd *ParseCmd, config *yuzu.Config, format string) error {
	entries, err := os.ReadDir(cmd.Dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !hasExtension(entry.Name(), config.Watch.Extensions) {
			continue
		}

		cmd.parseFile(ctx, frontend, parseCmd, filepath.Join(cmd.Dir, entry.Name()), format)
	}

	return nil
}

func (cmd *WatchCmd) parseFile(ctx *Context, frontend *yuzu.Frontend, parseCmd *ParseCmd, file, format string) {
	source, err := os.ReadFile(file)
	if err != nil {
		ctx.Logger.Warnf("read %s: %v", file, err)

		return
	}

	if !ctx.Quiet {
		color.Blue("--- %s", file)
	}

	if err := parseCmd.parseOne(ctx, frontend, file, string(source), format); err != nil {
		ctx.Logger.Debugf("parse %s: %v", file, err)

		return
	}

	if !ctx.Quiet {
		color.Green("ok")
	}
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}
