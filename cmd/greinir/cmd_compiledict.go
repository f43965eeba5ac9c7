package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/malfong/greinir/dict"
)

// compileDictCmd drives dict.Builder to produce a binary lexicon blob
// from a simple line-oriented textual source, for testing the Dict
// round-trip property end to end without needing the licensed BÍN data.
//
// Source line format: form<TAB>stem<TAB>wordID<TAB>class<TAB>subclass<TAB>tag
var compileDictCmd = &cobra.Command{
	Use:   "compile-dict <src> <out>",
	Short: "Compile a tab-separated lexicon source into a binary blob",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, out := args[0], args[1]
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("open %s: %w", src, err)
		}
		defer f.Close()

		var b dict.Builder
		scanner := bufio.NewScanner(f)
		lineno := 0
		for scanner.Scan() {
			lineno++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			fields := strings.Split(line, "\t")
			if len(fields) != 6 {
				return fmt.Errorf("%s:%d: expected 6 tab-separated fields, got %d", src, lineno, len(fields))
			}
			wordID, err := strconv.Atoi(fields[2])
			if err != nil {
				return fmt.Errorf("%s:%d: bad word id %q: %w", src, lineno, fields[2], err)
			}
			b.Add(dict.Entry{
				Form:     fields[0],
				Stem:     fields[1],
				WordID:   int32(wordID),
				Class:    fields[3],
				Subclass: fields[4],
				Tag:      fields[5],
			})
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read %s: %w", src, err)
		}

		blob, err := b.Build()
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		if err := os.WriteFile(out, blob, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(blob))
		return nil
	},
}
