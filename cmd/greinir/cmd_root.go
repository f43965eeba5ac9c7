package main

import (
	"github.com/spf13/cobra"
)

var traceFlag string

var rootCmd = &cobra.Command{
	Use:   "greinir",
	Short: "Tokenize, look up, parse and reduce Icelandic sentences",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		tracer().SetTraceLevel(traceLevel(traceFlag))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&traceFlag, "trace", "Info", "trace level [Debug|Info|Error]")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(dumpForestCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(compileDictCmd)
}
