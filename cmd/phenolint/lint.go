package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"phenolint/internal/config"
	"phenolint/internal/context"
	"phenolint/internal/linter"
	"phenolint/internal/ontology"
	"phenolint/internal/report"
	"phenolint/internal/xlog"
)

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Lint a Phenopacket document",
	Long:  "Reads a Phenopacket from a file argument or stdin, runs the enabled rules, and optionally prints a patched document to stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().Bool("patch", false, "apply automatically-derived fixes and print the patched document to stdout")
	lintCmd.Flags().Bool("quiet", false, "suppress stderr diagnostics")
	lintCmd.Flags().String("config", "", "path to phenolint.toml")
	lintCmd.Flags().String("hpo-path", "", "path to an HPO ontology file (overrides config)")
	lintCmd.Flags().Bool("debug", false, "verbose logging")
}

func runLint(cmd *cobra.Command, args []string) error {
	applyPatches, _ := cmd.Flags().GetBool("patch")
	quiet, _ := cmd.Flags().GetBool("quiet")
	configPath, _ := cmd.Flags().GetString("config")
	hpoPath, _ := cmd.Flags().GetString("hpo-path")
	debug, _ := cmd.Flags().GetBool("debug")

	log, err := xlog.New(debug)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if hpoPath != "" {
		cfg.HPOPath = hpoPath
	}

	var hpo ontology.Ontology
	if cfg.HPOPath != "" {
		hpo, err = ontology.LoadTSV(cfg.HPOPath)
		if err != nil {
			return fmt.Errorf("loading HPO: %w", err)
		}
	}

	input, err := readInput(args)
	if err != nil {
		return err
	}

	ctx := context.New(hpo, cfg.EnabledRules)
	result := linter.Lint(log, ctx, input, applyPatches, quiet || cfg.Quiet)
	if result.Err != nil {
		return result.Err
	}

	if data := result.Report.PatchedPhenopacket; data != nil {
		switch v := data.(type) {
		case report.TextData:
			fmt.Fprint(os.Stdout, string(v))
		case report.BinaryData:
			os.Stdout.Write(v)
		}
	}
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
