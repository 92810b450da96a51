package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

type options struct {
	// Common options
	configPath string
	runMode    string // "service" or "github"
	baseURL    string
	token      string
	timeout    time.Duration
	keying     string
	logLevel   string
	logFormat  string

	// Render options
	format             string
	templatesPath      string
	outputDir          string
	expandAll          bool
	enableExportReport bool
	enableTrace        bool

	// View options
	logFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "commitview",
		Short: "Browse a single commit: metadata and per-file diffs",
		Long: `commitview loads a commit's metadata and file changes from a repository-browsing
service (or GitHub) and shows them as a page of collapsible file sections.

Commits are addressed as owner/repo@oid, "owner/repo oid", or
/repositories/owner/repo/commits/oid.`,
		Version:       fmt.Sprintf("%s (built: %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Common flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config file (YAML)")
	flags.StringVar(&opts.runMode, "run-mode", "service", "Run mode: service or github")
	flags.StringVar(&opts.baseURL, "base-url", "", "Repository service base URL [service mode] (default from config, http://localhost:5000)")
	flags.StringVar(&opts.token, "token", "", "API token (default GH_TOKEN/GITHUB_TOKEN in github mode)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP request timeout, 0 for none")
	flags.StringVar(&opts.keying, "disclosure-keying", "", "Keep expanded sections by position or path")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(newRenderCmd(opts), newViewCmd(opts))
	return cmd
}

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <owner/repo@oid | owner/repo oid>",
		Short: "Render a commit page to markdown, html or text",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "markdown", "Output format: markdown, html or text")
	cmd.Flags().StringVar(&opts.templatesPath, "templates-path", "", "Directory with custom commit.<ext>.tmpl and file.<ext>.tmpl")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Write <short-oid>-commit.<ext> here instead of stdout")
	cmd.Flags().BoolVar(&opts.expandAll, "expand-all", false, "Render every file section expanded")
	cmd.Flags().BoolVar(&opts.enableExportReport, "export-report", false, "Also write report.json into the output directory")
	cmd.Flags().BoolVar(&opts.enableTrace, "enable-trace", false, "Write performance-report.json with request timings into the output directory")

	return cmd
}

func newViewCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <owner/repo@oid | owner/repo oid>",
		Short: "Browse a commit interactively in the terminal",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file (logs are discarded otherwise)")

	return cmd
}
