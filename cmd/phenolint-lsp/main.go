// Command phenolint-lsp runs phenolint as a Language Server Protocol
// server over stdio, publishing lint diagnostics on open/change and
// offering one "Apply phenolint patches" code action.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"phenolint/internal/config"
	"phenolint/internal/context"
	"phenolint/internal/lsp"
	"phenolint/internal/ontology"
	"phenolint/internal/xlog"
)

var rootCmd = &cobra.Command{
	Use:   "phenolint-lsp",
	Short: "Phenopacket language server",
	Long:  "phenolint-lsp runs phenolint's rules over documents opened by an LSP client, publishing diagnostics and a patch code action.",
	RunE:  run,
}

func init() {
	rootCmd.Flags().String("hpo-path", "", "path to an HPO ontology file enabling HPO*** rules")
	rootCmd.Flags().Bool("debug", false, "verbose logging")
}

func run(cmd *cobra.Command, args []string) error {
	hpoPath, _ := cmd.Flags().GetString("hpo-path")
	debug, _ := cmd.Flags().GetBool("debug")

	log, err := xlog.New(debug)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	var hpo ontology.Ontology
	if hpoPath != "" {
		hpo, err = ontology.LoadTSV(hpoPath)
		if err != nil {
			return fmt.Errorf("loading HPO: %w", err)
		}
	}

	ctx := context.New(hpo, config.DefaultEnabledRules)
	server := lsp.NewServer(log, ctx)
	return server.Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
