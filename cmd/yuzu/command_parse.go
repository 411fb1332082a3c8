package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/yuzulang/yuzu"
	"github.com/yuzulang/yuzu/outline"
	"github.com/yuzulang/yuzu/parser"
	"github.com/yuzulang/yuzu/semtree"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	Files  []string `arg:"" optional:"" help:"Source files to parse" type:"path"`
	Expr   string   `short:"e" help:"Parse an inline expression instead of files"`
	Format string   `help:"Output format (text, tree, json); overrides the config"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	config, err := yuzu.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	applyColorMode(config.Output.Color)

	format := config.Output.Format
	if cmd.Format != "" {
		format = cmd.Format
	}

	frontend := yuzu.NewFrontend(config)

	if cmd.Expr != "" {
		return cmd.parseOne(ctx, frontend, "<expr>", cmd.Expr, format)
	}

	if len(cmd.Files) == 0 {
		return fmt.Errorf("%w: pass source files or --expr", yuzu.ErrNoSourcesFound)
	}

	failed := 0

	for _, file := range cmd.Files {
		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("%w: %s", yuzu.ErrSourceNotFound, file)
		}

		if err := cmd.parseOne(ctx, frontend, file, string(source), format); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s) had errors", yuzu.ErrCompileFailed, failed, len(cmd.Files))
	}

	return nil
}

func (cmd *ParseCmd) parseOne(ctx *Context, frontend *yuzu.Frontend, uri, source, format string) error {
	ctx.Logger.Debugf("parsing %s", uri)

	switch format {
	case "text":
		result := frontend.Compile(uri, source)
		printDiagnostics(ctx, result.Diagnostics)

		if !ctx.Quiet {
			for _, expr := range result.Exprs {
				fmt.Println(semtree.Render(expr))
			}
		}

		if result.HasErrors() {
			return yuzu.ErrCompileFailed
		}
	case "tree":
		result := frontend.CompileOutline(uri, source)
		printDiagnostics(ctx, result.Diagnostics)

		if !ctx.Quiet {
			for _, node := range result.Nodes {
				printOutline(node, 0)
			}
		}

		if len(result.Diagnostics) > 0 {
			return yuzu.ErrCompileFailed
		}
	case "json":
		result := frontend.CompileOutline(uri, source)
		printDiagnostics(ctx, result.Diagnostics)

		if !ctx.Quiet {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			if err := encoder.Encode(outlineJSON(result.Nodes)); err != nil {
				return err
			}
		}

		if len(result.Diagnostics) > 0 {
			return yuzu.ErrCompileFailed
		}
	default:
		return fmt.Errorf("%w: '%s'", yuzu.ErrUnknownOutputFormat, format)
	}

	return nil
}

func printDiagnostics(ctx *Context, diagnostics []parser.Diagnostic) {
	if ctx.Quiet {
		return
	}

	for _, d := range diagnostics {
		color.Red("%s", d)
	}
}

func printOutline(node *outline.Node, depth int) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), node)

	for _, child := range node.Children {
		printOutline(child, depth+1)
	}
}

type outlineNodeJSON struct {
	Kind     string            `json:"kind"`
	Name     string            `json:"name,omitempty"`
	Offset   int               `json:"offset"`
	Children []outlineNodeJSON `json:"children,omitempty"`
}

func outlineJSON(nodes []*outline.Node) []outlineNodeJSON {
	out := make([]outlineNodeJSON, 0, len(nodes))

	for _, node := range nodes {
		out = append(out, outlineNodeJSON{
			Kind:     node.Kind.String(),
			Name:     string(node.Name),
			Offset:   node.Pos.Offset,
			Children: outlineJSON(node.Children),
		})
	}

	return out
}
