package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/yuzulang/yuzu"
	"github.com/yuzulang/yuzu/tokenizer"
)

// TokensCmd represents the tokens command
type TokensCmd struct {
	File string `arg:"" optional:"" help:"Source file to tokenize" type:"path"`
	Expr string `short:"e" help:"Tokenize an inline expression instead of a file"`
	All  bool   `help:"Include whitespace and comment tokens"`
}

// Run executes the tokens command
func (cmd *TokensCmd) Run(ctx *Context) error {
	source := cmd.Expr

	if source == "" {
		if cmd.File == "" {
			return fmt.Errorf("%w: pass a source file or --expr", yuzu.ErrNoSourcesFound)
		}

		data, err := os.ReadFile(cmd.File)
		if err != nil {
			return fmt.Errorf("%w: %s", yuzu.ErrSourceNotFound, cmd.File)
		}

		source = string(data)
	}

	options := tokenizer.Options{SkipWhitespace: !cmd.All, SkipComments: !cmd.All}

	for token, err := range tokenizer.NewTokenizer(source, options).Tokens() {
		if err != nil {
			color.Red("%v", err)

			return yuzu.ErrCompileFailed
		}

		if !ctx.Quiet {
			fmt.Printf("%4d:%-3d %-16s %q\n", token.Position.Line, token.Position.Column, token.Type, token.Value)
		}
	}

	return nil
}
