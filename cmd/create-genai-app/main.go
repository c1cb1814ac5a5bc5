package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-genai-starter/internal/config"
	"github.com/goliatone/go-genai-starter/internal/console"
	"github.com/goliatone/go-genai-starter/internal/logging"
	"github.com/goliatone/go-genai-starter/internal/render"
	"github.com/goliatone/go-genai-starter/pkg/astra"
	"github.com/goliatone/go-genai-starter/pkg/orchestrator"
	"github.com/goliatone/go-genai-starter/pkg/params"
	"github.com/goliatone/go-genai-starter/pkg/prompt"
	"github.com/goliatone/go-genai-starter/pkg/scaffold"
)

type options struct {
	configPath string
	workDir    string
	verbose    bool
	logFile    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type runFunc func(ctx context.Context, opts *options, ui *console.Console) error

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return executeWith(ctx, args, stdout, stderr, run)
}

// executeWith runs the root command with fn as its action. The terminal only
// ever sees the abort line, plus the message of an invalid configuration;
// everything else goes to the log.
func executeWith(ctx context.Context, args []string, stdout, stderr io.Writer, fn runFunc) int {
	ui := console.New(stdout)
	cmd := newRootCommand(ui, fn)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, config.ErrInvalid) {
			fmt.Fprintln(stderr, err)
		}
		ui.Abort()
		return 1
	}
	return 0
}

func newRootCommand(ui *console.Console, fn runFunc) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "create-genai-app",
		Short:         "Create a GenAI starter app wired to Astra DB",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fn(cmd.Context(), opts, ui)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML configuration file")
	flags.StringVarP(&opts.workDir, "dir", "d", ".", "directory where the project is created")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr")
	flags.StringVar(&opts.logFile, "log-file", "", "write JSON diagnostics to this file")
	return cmd
}

func run(ctx context.Context, opts *options, ui *console.Console) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logFile := cfg.Logging.File
	if opts.logFile != "" {
		logFile = opts.logFile
	}
	base, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		File:    logFile,
		Verbose: opts.verbose,
	})
	if err != nil {
		return err
	}
	defer func() { _ = base.Sync() }()
	logger, runID := logging.WithRunID(base)
	logger.Debug("starting run", zap.String("config", opts.configPath), zap.String("dir", opts.workDir))

	engine := render.New(render.WithGlobalData(map[string]any{"run_id": runID}))

	plan := cfg.PlanConfig(opts.workDir)
	plan.EnvFormatter = engine.EnvFormatter(cfg.Env.Template)

	client := astra.NewClient(
		astra.WithKeyspace(cfg.Astra.Keyspace),
		astra.WithAPIPath(cfg.Astra.APIPath),
	)
	checker := astra.NewChecker(client,
		astra.WithTimeout(cfg.Astra.CheckTimeout),
		astra.WithLogger(logger),
	)

	orch := orchestrator.New(
		orchestrator.WithDriver(prompt.NewSurveyDriver()),
		orchestrator.WithChecker(checker),
		orchestrator.WithRunner(scaffold.NewExecRunner(scaffold.WithRunnerLogger(logger))),
		orchestrator.WithPresenter(ui),
		orchestrator.WithObservers(ui),
		orchestrator.WithLogger(logger),
		orchestrator.WithProjectDefaults(cfg.ProjectDefaults()),
		orchestrator.WithPlanConfig(plan),
		orchestrator.WithNextSteps(func(rp params.RunParameters) (string, error) {
			return engine.NextSteps(rp, cfg.Install.Command)
		}),
	)

	result, err := orch.Run(ctx)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}
	logger.Info("run completed",
		zap.String("project", result.Project.Name),
		zap.Int("connection_attempts", result.Attempts),
		zap.Strings("steps", result.Outcome.Completed),
	)
	return nil
}
