package scaffold

import (
	"context"

	"github.com/goliatone/go-genai-starter/pkg/params"
	"github.com/goliatone/go-genai-starter/pkg/pipeline"
)

// Step labels reported by the pipeline.
const (
	LabelGenerate = "Generating project"
	LabelEnv      = "Writing environment file"
	LabelManifest = "Adding dependencies"
	LabelInstall  = "Installing dependencies"
	LabelCommit   = "Committing to git"
)

// PlanConfig carries everything the steps need besides the run parameters.
type PlanConfig struct {
	// WorkDir is where the generator creates the project directory.
	WorkDir   string
	Generator GeneratorConfig

	InstallCommand string
	InstallArgs    []string

	DependencyName    string
	DependencyVersion string

	CommitMessage string

	EnvFile      string
	EnvFormatter EnvFormatter
}

// DefaultPlanConfig returns the stock generator and tool settings.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		WorkDir: ".",
		Generator: GeneratorConfig{
			Command:     "npx",
			Package:     "create-next-app@latest",
			ImportAlias: "@/*",
		},
		InstallCommand:    "npm",
		InstallArgs:       []string{"install"},
		DependencyName:    DefaultDependencyName,
		DependencyVersion: DefaultDependencyVersion,
		CommitMessage:     "Added GenAI content",
		EnvFile:           DefaultEnvFile,
		EnvFormatter:      FormatEnv,
	}
}

// Plan returns the ordered steps for run: generate, write secrets, add the
// dependency, install when requested, and a best-effort git commit.
func Plan(cfg PlanConfig, run params.RunParameters, runner Runner) []pipeline.Step {
	projectDir := ProjectDir(cfg.WorkDir, run.ProjectParameters)

	steps := []pipeline.Step{
		pipeline.NewStep(LabelGenerate, func(ctx context.Context) error {
			return runner.Run(ctx, CreateAppCommand(cfg.Generator, run.ProjectParameters, cfg.WorkDir))
		}),
		pipeline.NewStep(LabelEnv, func(context.Context) error {
			return WriteEnvFile(projectDir, cfg.EnvFile, run.ConnectionParameters, cfg.EnvFormatter)
		}),
		pipeline.NewStep(LabelManifest, func(context.Context) error {
			return AddDependency(projectDir, cfg.DependencyName, cfg.DependencyVersion)
		}),
	}

	if run.InstallDependencies {
		steps = append(steps, pipeline.NewStep(LabelInstall, func(ctx context.Context) error {
			return runner.Run(ctx, InstallCommand(cfg.InstallCommand, cfg.InstallArgs, projectDir))
		}))
	}

	steps = append(steps, pipeline.NewBestEffortStep(LabelCommit, func(ctx context.Context) error {
		for _, cmd := range GitCommitCommands(cfg.CommitMessage, projectDir) {
			if err := runner.Run(ctx, cmd); err != nil {
				return err
			}
		}
		return nil
	}))

	return steps
}
