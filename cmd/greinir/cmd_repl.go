package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/malfong/greinir/dict"
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/sppf"
)

var (
	replDictPath    string
	replGrammarPath string
)

// replCmd is an interactive loop: every line is tokenized, looked up,
// parsed and reduced, then pretty-printed. Grounded directly on the
// teacher's T.REPL (terex/terexlang/trepl/repl.go), swapping s-expression
// evaluation for the sentence pipeline.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively parse sentences",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := dict.Open(replDictPath)
		if err != nil {
			return err
		}
		defer d.Close()

		g, err := grammar.Load(replGrammarPath)
		if err != nil {
			return err
		}

		rl, err := readline.New("greinir> ")
		if err != nil {
			return err
		}
		defer rl.Close()

		pterm.Info.Println("Welcome to greinir. Quit with <ctrl>D.")
		for {
			line, err := rl.Readline()
			if err != nil { // io.EOF on ctrl-D
				break
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			evalLine(line, d, g)
		}
		pterm.Info.Println("Good bye!")
		return nil
	},
}

func evalLine(line string, d *dict.Dict, g *grammar.Grammar) {
	toks, root, forest, perr, err := pipeline(line, d, g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if perr != nil {
		pterm.Error.Printf("no parse: %s (at token %d)\n", perr.Msg, perr.TokenIndex)
		return
	}
	if root == sppf.NilNode {
		pterm.Error.Println("no parse")
		return
	}
	reduceAndPrint(root, forest, toks, g, false)
}

func init() {
	replCmd.Flags().StringVar(&replDictPath, "dict", "", "path to a compiled dictionary blob")
	replCmd.Flags().StringVar(&replGrammarPath, "grammar", "", "path to a compiled grammar file")
	replCmd.MarkFlagRequired("dict")
	replCmd.MarkFlagRequired("grammar")
}
