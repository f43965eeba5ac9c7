package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malfong/greinir/dict"
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/sppf"
)

var (
	parseDictPath    string
	parseGrammarPath string
	parseFlat        bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Tokenize, look up, parse and reduce a sentence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := dict.Open(parseDictPath)
		if err != nil {
			return fmt.Errorf("open dict: %w", err)
		}
		defer d.Close()

		g, err := grammar.Load(parseGrammarPath)
		if err != nil {
			return fmt.Errorf("load grammar: %w", err)
		}

		toks, root, forest, perr, err := pipeline(args[0], d, g)
		if err != nil {
			return err
		}
		if perr != nil {
			return fmt.Errorf("parse failed at token %d: %s", perr.TokenIndex, perr.Msg)
		}
		if root == sppf.NilNode {
			return fmt.Errorf("parse produced no root")
		}
		reduceAndPrint(root, forest, toks, g, parseFlat)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseDictPath, "dict", "", "path to a compiled dictionary blob")
	parseCmd.Flags().StringVar(&parseGrammarPath, "grammar", "", "path to a compiled grammar file")
	parseCmd.Flags().BoolVar(&parseFlat, "flat", false, "print the compact flat dump instead of the pretty tree")
	parseCmd.MarkFlagRequired("dict")
	parseCmd.MarkFlagRequired("grammar")
}
