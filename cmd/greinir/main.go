// Command greinir is a small end-to-end driver for the parser: tokenize,
// look up readings in a compiled Dict, parse against a compiled Grammar,
// reduce the resulting forest, and print the result.
package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func tracer() tracing.Trace {
	return tracing.Select("greinir.cmd")
}

func traceLevel(s string) tracing.TraceLevel {
	switch s {
	case "Debug":
		return tracing.LevelDebug
	case "Error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}

func main() {
	gtrace.SyntaxTracer = gologadapter.New()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
