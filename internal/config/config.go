// Package config loads the wizard configuration. Every key is optional; a
// missing file section keeps the built-in default.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-genai-starter/internal/render"
	"github.com/goliatone/go-genai-starter/pkg/astra"
	"github.com/goliatone/go-genai-starter/pkg/params"
	"github.com/goliatone/go-genai-starter/pkg/prompt"
	"github.com/goliatone/go-genai-starter/pkg/scaffold"
)

// DefaultEnvTemplate renders the secrets file: the endpoint line, then the
// token line, no trailing newline.
const DefaultEnvTemplate = "ASTRA_DB_ENDPOINT={{ endpoint }}\nASTRA_DB_TOKEN={{ token }}"

// ErrInvalid matches, via errors.Is, every error returned by Load, Parse and
// Validate.
var ErrInvalid = errors.New("config: invalid configuration")

type invalidError struct {
	err error
}

func invalid(err error) error {
	return &invalidError{err: err}
}

func (e *invalidError) Error() string { return e.err.Error() }

func (e *invalidError) Unwrap() error { return e.err }

func (e *invalidError) Is(target error) bool { return target == ErrInvalid }

// Sample values rendered through env.template to check its shape.
var sampleConnection = params.ConnectionParameters{
	Endpoint: "https://sample-region.apps.astra.datastax.com",
	Token:    "AstraCS:sample",
}

// DefaultsConfig seeds the project prompts.
type DefaultsConfig struct {
	ProjectName string `yaml:"project_name"`
	Language    string `yaml:"language"`
	Styling     bool   `yaml:"styling"`
	Linter      bool   `yaml:"linter"`
	Install     bool   `yaml:"install"`
}

// ScaffoldConfig names the project generator.
type ScaffoldConfig struct {
	Command     string `yaml:"command"`
	Package     string `yaml:"package"`
	ImportAlias string `yaml:"import_alias"`
}

// InstallConfig names the dependency installer.
type InstallConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// DependencyConfig is the manifest entry added to the generated project.
type DependencyConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// GitConfig configures the best-effort commit.
type GitConfig struct {
	CommitMessage string `yaml:"commit_message"`
}

// AstraConfig configures the connectivity check.
type AstraConfig struct {
	Keyspace     string        `yaml:"keyspace"`
	APIPath      string        `yaml:"api_path"`
	CheckTimeout time.Duration `yaml:"check_timeout"`
}

// EnvConfig configures the generated secrets file.
type EnvConfig struct {
	File     string `yaml:"file"`
	Template string `yaml:"template"`
}

// LoggingConfig configures the diagnostic log.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config models the optional YAML configuration file.
type Config struct {
	Defaults   DefaultsConfig   `yaml:"defaults"`
	Scaffold   ScaffoldConfig   `yaml:"scaffold"`
	Install    InstallConfig    `yaml:"install"`
	Dependency DependencyConfig `yaml:"dependency"`
	Git        GitConfig        `yaml:"git"`
	Astra      AstraConfig      `yaml:"astra"`
	Env        EnvConfig        `yaml:"env"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	defaults := prompt.DefaultProjectDefaults()
	plan := scaffold.DefaultPlanConfig()
	return Config{
		Defaults: DefaultsConfig{
			ProjectName: defaults.Name,
			Language:    string(defaults.Language),
			Styling:     defaults.Styling,
			Linter:      defaults.Linter,
			Install:     defaults.Install,
		},
		Scaffold: ScaffoldConfig{
			Command:     plan.Generator.Command,
			Package:     plan.Generator.Package,
			ImportAlias: plan.Generator.ImportAlias,
		},
		Install: InstallConfig{
			Command: plan.InstallCommand,
			Args:    plan.InstallArgs,
		},
		Dependency: DependencyConfig{
			Name:    plan.DependencyName,
			Version: plan.DependencyVersion,
		},
		Git: GitConfig{CommitMessage: plan.CommitMessage},
		Astra: AstraConfig{
			Keyspace: astra.DefaultKeyspace,
			APIPath:  astra.DefaultAPIPath,
		},
		Env: EnvConfig{
			File:     plan.EnvFile,
			Template: DefaultEnvTemplate,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, invalid(fmt.Errorf("config: read %s: %w", path, err))
	}
	return Parse(data)
}

// Parse overlays YAML data on Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, invalid(fmt.Errorf("config: parse: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if _, ok := params.ParseLanguage(c.Defaults.Language); !ok {
		errs = append(errs, fmt.Errorf("defaults.language %q must be ts or js", c.Defaults.Language))
	}
	if msg := params.ValidateProjectName(c.Defaults.ProjectName); msg != "" {
		errs = append(errs, fmt.Errorf("defaults.project_name %q: %s", c.Defaults.ProjectName, msg))
	}
	if strings.TrimSpace(c.Scaffold.Command) == "" || strings.TrimSpace(c.Scaffold.Package) == "" {
		errs = append(errs, errors.New("scaffold.command and scaffold.package are required"))
	}
	if strings.TrimSpace(c.Install.Command) == "" {
		errs = append(errs, errors.New("install.command is required"))
	}
	if strings.TrimSpace(c.Dependency.Name) == "" || strings.TrimSpace(c.Dependency.Version) == "" {
		errs = append(errs, errors.New("dependency.name and dependency.version are required"))
	}
	if c.Astra.CheckTimeout < 0 {
		errs = append(errs, errors.New("astra.check_timeout must not be negative"))
	}
	if strings.ContainsAny(c.Env.File, `/\`) || c.Env.File == "" {
		errs = append(errs, fmt.Errorf("env.file %q must be a plain file name", c.Env.File))
	}
	if err := checkEnvTemplate(c.Env.Template); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return invalid(fmt.Errorf("config: %w", errors.Join(errs...)))
	}
	return nil
}

// ProjectDefaults converts the defaults section for the project prompts.
func (c Config) ProjectDefaults() prompt.ProjectDefaults {
	lang, ok := params.ParseLanguage(c.Defaults.Language)
	if !ok {
		lang = params.LanguageTypeScript
	}
	return prompt.ProjectDefaults{
		Name:     c.Defaults.ProjectName,
		Language: lang,
		Styling:  c.Defaults.Styling,
		Linter:   c.Defaults.Linter,
		Install:  c.Defaults.Install,
	}
}

// PlanConfig converts the tool sections for scaffold.Plan. The env formatter
// is left at the plain default; callers wire a template-backed one.
func (c Config) PlanConfig(workDir string) scaffold.PlanConfig {
	plan := scaffold.DefaultPlanConfig()
	if workDir != "" {
		plan.WorkDir = workDir
	}
	plan.Generator = scaffold.GeneratorConfig{
		Command:     c.Scaffold.Command,
		Package:     c.Scaffold.Package,
		ImportAlias: c.Scaffold.ImportAlias,
	}
	plan.InstallCommand = c.Install.Command
	plan.InstallArgs = append([]string(nil), c.Install.Args...)
	plan.DependencyName = c.Dependency.Name
	plan.DependencyVersion = c.Dependency.Version
	plan.CommitMessage = c.Git.CommitMessage
	plan.EnvFile = c.Env.File
	return plan
}

// checkEnvTemplate renders source against sample parameters. The body must
// start with the endpoint line followed by the token line.
func checkEnvTemplate(source string) error {
	if strings.TrimSpace(source) == "" {
		return errors.New("env.template is required")
	}
	body, err := render.New().EnvFormatter(source)(sampleConnection)
	if err != nil {
		return fmt.Errorf("env.template: %w", err)
	}
	lines := strings.Split(body, "\n")
	want := []string{
		scaffold.EnvEndpointKey + "=" + sampleConnection.Endpoint,
		scaffold.EnvTokenKey + "=" + sampleConnection.Token,
	}
	if len(lines) < len(want) || lines[0] != want[0] || lines[1] != want[1] {
		return fmt.Errorf("env.template must render %s= then %s= lines", scaffold.EnvEndpointKey, scaffold.EnvTokenKey)
	}
	return nil
}
