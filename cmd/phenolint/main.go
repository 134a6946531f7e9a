// Command phenolint lints Phenopacket documents from stdin or a file and
// optionally writes an automatically-patched document to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "phenolint",
	Short: "A linter for Phenopacket documents",
	Long:  "phenolint checks Phenopacket records (JSON, YAML, or Protobuf) against a registered set of rules and can apply mechanical fixes.",
}

func main() {
	rootCmd.AddCommand(lintCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
