// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carteakey/lllms/internal/manifest"
	"github.com/carteakey/lllms/pkg/modelfetch"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect model manifests",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force   bool
		useYAML bool
	)

	cmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Create a sample manifest",
		Long: `Creates a sample manifest at PATH (default: models_config.json, or
models_config.yaml with --yaml).

Unlike --create-config, an existing file is kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "models_config.json"
			if useYAML {
				path = "models_config.yaml"
			}
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
			}
			if err := manifest.WriteSample(path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			successColor.Fprintf(out, "✓ Created config file: %s\n", path)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Edit this file to list your models, then run:")
			fmt.Fprintf(out, "  lllms --config %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")
	cmd.Flags().BoolVar(&useYAML, "yaml", false, "Create YAML config instead of JSON")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var baseDir string

	cmd := &cobra.Command{
		Use:   "show PATH",
		Short: "Show the jobs in a manifest and where each would be saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Read(args[0])
			if err != nil {
				return err
			}
			if m.BaseModelsDir != "" {
				baseDir = m.BaseModelsDir
			}
			base := defaultString(baseDir, modelfetch.DefaultBaseDir)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n", args[0])
			fmt.Fprintf(out, "Base directory: %s\n\n", base)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tREPO\tDESTINATION\tPATTERNS\tSTATUS")
			for i, job := range m.Models {
				dest := "-"
				status := "ok"
				if err := job.Validate(); err != nil {
					status = err.Error()
				} else if job.LocalDir != "" {
					dest = job.LocalDir
				} else {
					dest = modelfetch.DefaultDestination(base, job.Repo)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, defaultString(job.Repo, "-"), dest, patternSummary(job), status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(m.Models) == 0 {
				fmt.Fprintln(out, "No models found in configuration file")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-models-dir", "", "Base directory used when the manifest does not set one")

	return cmd
}

func patternSummary(job modelfetch.Job) string {
	s := ""
	for _, p := range job.AllowPatterns {
		s += "+" + p + " "
	}
	for _, p := range job.IgnorePatterns {
		s += "-" + p + " "
	}
	if s == "" {
		return "*"
	}
	return s[:len(s)-1]
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
