package scaffold

import (
	"path/filepath"

	"github.com/goliatone/go-genai-starter/pkg/params"
)

// GeneratorConfig names the project generator invocation.
type GeneratorConfig struct {
	Command     string
	Package     string
	ImportAlias string
}

// CreateAppCommand builds the generator call for p, run inside workDir.
func CreateAppCommand(cfg GeneratorConfig, p params.ProjectParameters, workDir string) Command {
	args := []string{cfg.Package, p.Name, "--" + string(p.Language)}
	if p.UseStylingFramework {
		args = append(args, "--tailwind")
	} else {
		args = append(args, "--no-tailwind")
	}
	if p.UseLinter {
		args = append(args, "--eslint")
	} else {
		args = append(args, "--no-eslint")
	}
	args = append(args,
		"--no-turbo",
		"--app",
		"--no-src-dir",
		"--import-alias", cfg.ImportAlias,
		"--skip-install",
	)
	return Command{Name: cfg.Command, Args: args, Dir: workDir}
}

// InstallCommand runs the dependency installer in projectDir.
func InstallCommand(command string, args []string, projectDir string) Command {
	return Command{Name: command, Args: append([]string(nil), args...), Dir: projectDir}
}

// GitCommitCommands stages and commits everything in projectDir.
func GitCommitCommands(message, projectDir string) []Command {
	return []Command{
		{Name: "git", Args: []string{"add", "-A"}, Dir: projectDir},
		{Name: "git", Args: []string{"commit", "-m", message}, Dir: projectDir},
	}
}

// ProjectDir is the directory the generator creates for p.
func ProjectDir(workDir string, p params.ProjectParameters) string {
	return filepath.Join(workDir, p.Name)
}
