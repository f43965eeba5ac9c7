package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malfong/greinir/dict"
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/sppf"
)

var (
	dumpDictPath    string
	dumpGrammarPath string
)

// dumpForestCmd prints the *unreduced* forest, for inspecting ambiguity
// before the reducer collapses it (spec.md §8, end-to-end scenario #6).
var dumpForestCmd = &cobra.Command{
	Use:   "dump-forest <text>",
	Short: "Print the unreduced SPPF flat dump for a sentence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := dict.Open(dumpDictPath)
		if err != nil {
			return fmt.Errorf("open dict: %w", err)
		}
		defer d.Close()

		g, err := grammar.Load(dumpGrammarPath)
		if err != nil {
			return fmt.Errorf("load grammar: %w", err)
		}

		_, root, forest, perr, err := pipeline(args[0], d, g)
		if err != nil {
			return err
		}
		if perr != nil {
			return fmt.Errorf("parse failed at token %d: %s", perr.TokenIndex, perr.Msg)
		}

		combos := sppf.CountCombinations(forest, root)
		fmt.Printf("; %d combinations before reduction\n", combos)
		sppf.FlatDump(cmd.OutOrStdout(), forest, root, grammarNamer{g})
		fmt.Println()
		return nil
	},
}

func init() {
	dumpForestCmd.Flags().StringVar(&dumpDictPath, "dict", "", "path to a compiled dictionary blob")
	dumpForestCmd.Flags().StringVar(&dumpGrammarPath, "grammar", "", "path to a compiled grammar file")
	dumpForestCmd.MarkFlagRequired("dict")
	dumpForestCmd.MarkFlagRequired("grammar")
}
