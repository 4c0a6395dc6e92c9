// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/carteakey/lllms/internal/manifest"
	"github.com/carteakey/lllms/pkg/modelfetch"
)

// RootOpts holds global CLI options.
type RootOpts struct {
	Token    string
	JSONOut  bool
	Quiet    bool
	Verbose  bool
	LogFile  string
	LogLevel string
	Progress bool
}

// fetchOpts holds the mode and job flags of the root command.
type fetchOpts struct {
	ConfigPath       string
	CreateConfigPath string
	BaseModelsDir    string
	DryRun           bool

	Job modelfetch.Job
}

// noModeMessage is printed after the usage text when no mode flag is given.
const noModeMessage = "Either --repo-id or --config must be specified"

// Execute runs the CLI with the given version string.
func Execute(version string) error {
	ctx, cancel := signalContext(context.Background())
	defer cancel()

	root := newRootCmd(version, nil)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

// newRootCmd builds the command tree. A nil fetcher means the hub client.
func newRootCmd(version string, fetcher modelfetch.Fetcher) *cobra.Command {
	ro := &RootOpts{}
	fo := &fetchOpts{}

	root := &cobra.Command{
		Use:   "lllms",
		Short: "Download models from the Hugging Face Hub",
		Example: `  # Download a single model
  lllms --repo-id microsoft/DialoGPT-medium

  # Download with specific patterns
  lllms --repo-id Qwen/Qwen3-32B-GGUF --allow-patterns "*Q6_K*"

  # Download to specific directory
  lllms --repo-id microsoft/DialoGPT-medium --local-dir ./my_models/dialogs

  # Use configuration file
  lllms --config models_config.json

  # Create sample config
  lllms --create-config models_config.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, ro, fo, fetcher)
		},
	}

	// Global flags
	root.PersistentFlags().StringVarP(&ro.Token, "token", "t", "", "Hugging Face access token (also reads HF_TOKEN env)")
	root.PersistentFlags().BoolVar(&ro.JSONOut, "json", false, "Emit machine-readable JSON logs and progress events")
	root.PersistentFlags().BoolVarP(&ro.Quiet, "quiet", "q", false, "Quiet mode (warnings and errors only)")
	root.PersistentFlags().BoolVarP(&ro.Verbose, "verbose", "v", false, "Verbose logs (debug details)")
	root.PersistentFlags().StringVar(&ro.LogFile, "log-file", "", "Write logs to file (in addition to stderr)")
	root.PersistentFlags().StringVar(&ro.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Mode flags
	root.Flags().StringVarP(&fo.ConfigPath, "config", "c", "", "Path to JSON (or YAML) configuration file")
	root.Flags().StringVar(&fo.CreateConfigPath, "create-config", "", "Create a sample configuration file at the specified path")

	// Single model flags
	root.Flags().StringVarP(&fo.Job.Repo, "repo-id", "r", "", "Repository ID to download (e.g., microsoft/DialoGPT-medium)")
	root.Flags().StringVarP(&fo.Job.LocalDir, "local-dir", "d", "", "Local directory to save the model")
	root.Flags().StringSliceVarP(&fo.Job.AllowPatterns, "allow-patterns", "a", nil, "File patterns to include (e.g., *.bin,*.json)")
	root.Flags().StringSliceVarP(&fo.Job.IgnorePatterns, "ignore-patterns", "i", nil, "File patterns to exclude")
	root.Flags().StringVar(&fo.Job.Revision, "revision", "", "Specific revision/branch to download")
	root.Flags().BoolVar(&fo.Job.ForceDownload, "force-download", false, "Re-download existing files")
	root.Flags().StringVar(&fo.BaseModelsDir, "base-models-dir", "", "Base directory for all models (default: ./models)")

	// CLI-only flags
	root.Flags().BoolVar(&fo.DryRun, "dry-run", false, "Plan only: list the files that would be downloaded")
	root.Flags().BoolVar(&ro.Progress, "progress", false, "Show a progress bar across manifest jobs (terminal only)")

	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd(version))
	root.SetHelpCommand(&cobra.Command{Use: "help", Hidden: true})

	return root
}

func runRoot(cmd *cobra.Command, ro *RootOpts, fo *fetchOpts, fetcher modelfetch.Fetcher) error {
	out := cmd.OutOrStdout()
	logger, closeLog, err := newLogger(ro, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	// Create sample config and exit
	if fo.CreateConfigPath != "" {
		if err := manifest.WriteSample(fo.CreateConfigPath); err != nil {
			return err
		}
		printSuccess(out, ro, "Sample configuration created at: %s", fo.CreateConfigPath)
		return nil
	}

	if fo.ConfigPath == "" && fo.Job.Repo == "" {
		_ = cmd.Help()
		fmt.Fprintf(cmd.ErrOrStderr(), "\nError: %s\n", noModeMessage)
		return nil
	}

	if fetcher == nil {
		hf := modelfetch.NewHubFetcher(logger)
		if ro.JSONOut || ro.Quiet {
			hf.Verbosity = 0
		}
		fetcher = hf
	}
	var progress modelfetch.ProgressFunc
	if ro.JSONOut {
		progress = jsonProgress(out)
	} else {
		progress = logProgress(logger)
	}
	d, err := modelfetch.New(fo.BaseModelsDir, fetcher,
		modelfetch.WithLogger(logger),
		modelfetch.WithToken(resolveToken(ro)),
		modelfetch.WithProgress(progress),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Download from config file
	if fo.ConfigPath != "" {
		return runManifest(ctx, cmd, ro, fo, d, logger)
	}

	// Download single model
	if fo.DryRun {
		p, err := d.Plan(ctx, fo.Job)
		if err != nil {
			return err
		}
		return printPlan(out, ro, p)
	}
	// The facade logs the failure and Execute prints it.
	path, err := d.Download(ctx, fo.Job)
	if err != nil {
		return err
	}
	printSuccess(out, ro, "Successfully downloaded to: %s", path)
	return nil
}

func runManifest(ctx context.Context, cmd *cobra.Command, ro *RootOpts, fo *fetchOpts, d *modelfetch.Downloader, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	logger = logger.With("run", uuid.NewString()[:8])

	m := manifest.Load(fo.ConfigPath, logger)
	if m.Empty() {
		logger.Warn("nothing to do: configuration is empty", "path", fo.ConfigPath)
		return nil
	}

	// Update base directory if specified in config
	if m.BaseModelsDir != "" {
		d.SetBaseDir(m.BaseModelsDir)
	}
	if len(m.Models) == 0 {
		logger.Warn("no models found in configuration file", "path", fo.ConfigPath)
		return nil
	}

	bar := newBatchBar(ro, cmd.ErrOrStderr(), len(m.Models))
	defer bar.Finish()

	sum := modelfetch.RunJobs(ctx, d, m.Models, modelfetch.BatchOptions{
		Logger: logger,
		DryRun: fo.DryRun,
		OnJobStart: func(index, total int, job modelfetch.Job) {
			bar.Start(job.Repo)
		},
		OnJobDone: func(index, total int, job modelfetch.Job, path string, err error) {
			bar.Done()
			if fo.DryRun {
				return
			}
			if err != nil {
				printFailure(out, ro, "[%d/%d] Failed to download %s: %v", index, total, job.Repo, err)
				return
			}
			printSuccess(out, ro, "[%d/%d] %s -> %s", index, total, job.Repo, path)
		},
		OnPlan: func(index, total int, p *modelfetch.Plan) {
			_ = printPlan(out, ro, p)
		},
	})
	bar.Skip(sum.Skipped)

	logger.Info("manifest finished",
		"total", sum.Total,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
	)
	return nil
}

func printPlan(w io.Writer, ro *RootOpts, p *modelfetch.Plan) error {
	if ro.JSONOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	rev := p.Revision
	if rev == "" {
		rev = "main"
	}
	fmt.Fprintf(w, "Plan for %s@%s -> %s (%d files):\n", p.Repo, rev, p.Dir, len(p.Files))
	for _, f := range p.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	return nil
}

func resolveToken(ro *RootOpts) string {
	tok := strings.TrimSpace(ro.Token)
	if tok == "" {
		tok = strings.TrimSpace(os.Getenv("HF_TOKEN"))
	}
	return tok
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
