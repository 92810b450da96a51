package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gh-nvat/commitview/src/internal/loader"
	"github.com/gh-nvat/commitview/src/internal/runner"
	"github.com/gh-nvat/commitview/src/internal/ui"
	"github.com/gh-nvat/commitview/src/pkg/config"
	"github.com/gh-nvat/commitview/src/pkg/github"
	"github.com/gh-nvat/commitview/src/pkg/models"
	"github.com/gh-nvat/commitview/src/pkg/repoapi"
	"github.com/gh-nvat/commitview/src/pkg/template"
	"github.com/gh-nvat/commitview/src/pkg/trace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logger = log.WithField("package", "main")

func setupLogging(opts *options, out io.Writer) error {
	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)

	switch opts.logFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format: %s (expected text or json)", opts.logFormat)
	}
	log.SetOutput(out)
	return nil
}

// loadConfig reads the config file and applies the flags that were set explicitly
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfgLoader := config.NewLoader()
	cfg, err := cfgLoader.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("run-mode") {
		cfg.Source.Mode = opts.runMode
	}
	if flags.Changed("base-url") {
		cfg.Source.BaseURL = opts.baseURL
	}
	if flags.Changed("token") {
		cfg.Source.Token = opts.token
	}
	if flags.Changed("timeout") {
		cfg.Source.Timeout = opts.timeout
	}
	if flags.Changed("disclosure-keying") {
		cfg.View.DisclosureKeying = opts.keying
	}

	if err := cfgLoader.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func sessionPolicy(cfg *config.Config) loader.Policy {
	return loader.Policy{
		ClearOnNavigate: cfg.View.ClearOnNavigateEnabled(),
		DiscardStale:    cfg.View.DiscardStaleEnabled(),
		Keying:          cfg.View.Keying(),
	}
}

func newGitHubClient(cfg *config.Config) *github.Client {
	token := cfg.Source.ResolveToken()
	if token == "" {
		token = github.TokenFromEnv()
	}
	return github.NewClient(token)
}

func newSource(cfg *config.Config) (loader.Source, error) {
	switch cfg.Source.Mode {
	case config.SourceModeGitHub:
		return newGitHubClient(cfg), nil
	case config.SourceModeService:
		return repoapi.NewClient(repoapi.Options{
			BaseURL:   cfg.Source.BaseURL,
			Token:     cfg.Source.ResolveToken(),
			Timeout:   cfg.Source.Timeout,
			UserAgent: "commitview/" + Version,
		})
	default:
		return nil, fmt.Errorf("invalid run mode: %s", cfg.Source.Mode)
	}
}

// Do all initialization steps here:
// 1. Resolve the coordinates and configuration
// 2. Initialize the renderer and the runner instance for the run mode
// 3. Initialize the runner
func initialize(ctx context.Context, cmd *cobra.Command, opts *options, args []string) (runner.RunnerInterface, error) {
	coords, err := models.ParseCoordinates(args...)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	format, err := template.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}

	runOpts := &runner.Options{
		RunMode:            cfg.Source.Mode,
		Coords:             coords,
		Format:             format,
		TemplatesPath:      opts.templatesPath,
		OutputDir:          opts.outputDir,
		ExpandAll:          opts.expandAll,
		Policy:             sessionPolicy(cfg),
		EnableExportReport: opts.enableExportReport,
		BaseURL:            cfg.Source.BaseURL,
		Token:              cfg.Source.ResolveToken(),
		Timeout:            cfg.Source.Timeout,
		Stdout:             cmd.OutOrStdout(),
	}
	renderer := template.NewRenderer()

	var runnerInstance runner.RunnerInterface
	switch runOpts.RunMode {
	case runner.RunModeGitHub:
		runnerInstance, err = runner.NewRunnerGitHub(ctx, runOpts, newGitHubClient(cfg), renderer)
	case runner.RunModeService:
		runnerInstance, err = runner.NewRunnerService(ctx, runOpts, renderer)
	default:
		return nil, fmt.Errorf("invalid run mode: %s", runOpts.RunMode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	if err := runnerInstance.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize runner: %w", err)
	}
	return runnerInstance, nil
}

func runRender(cmd *cobra.Command, opts *options, args []string) error {
	if err := setupLogging(opts, os.Stderr); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	traceDir := opts.outputDir
	if traceDir == "" {
		traceDir = "."
	}
	shutdown, err := trace.InitTracer("commitview", opts.enableTrace, traceDir)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer shutdown()

	r, err := initialize(ctx, cmd, opts, args)
	if err != nil {
		return err
	}
	return r.Process()
}

func runView(cmd *cobra.Command, opts *options, args []string) error {
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	if err := setupLogging(opts, logOut); err != nil {
		return err
	}

	coords, err := models.ParseCoordinates(args...)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	model := ui.New(ctx, src, loader.NewSession(sessionPolicy(cfg)), coords)
	logger.WithField("commit", coords.String()).WithField("mode", cfg.Source.Mode).Info("Starting view")

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("view failed: %w", err)
	}
	return nil
}
