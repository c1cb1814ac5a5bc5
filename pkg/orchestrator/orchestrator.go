package orchestrator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-genai-starter/pkg/astra"
	"github.com/goliatone/go-genai-starter/pkg/connection"
	"github.com/goliatone/go-genai-starter/pkg/params"
	"github.com/goliatone/go-genai-starter/pkg/pipeline"
	"github.com/goliatone/go-genai-starter/pkg/prompt"
	"github.com/goliatone/go-genai-starter/pkg/scaffold"
)

// User facing messages.
const (
	MsgIntro       = "Congrats! You're just several steps from creating a GenAI app!"
	MsgOutro       = "You're all set!"
	MsgPressAnyKey = "Press any key when ready"
)

// ReadinessNote is shown before the connection prompts.
var ReadinessNote = []string{
	"Now let's make sure you have a working Astra DB connection.",
	"To proceed, please make sure you have an Astra account and an Astra Vector Database ready to go.",
	"Read here for details: https://docs.datastax.com/en/astra-db-serverless/get-started/quickstart.html#create-a-serverless-vector-database",
}

// Presenter shows framing and notes to the user.
type Presenter interface {
	Intro(msg string)
	Outro(msg string)
	Note(lines ...string)
}

type nopPresenter struct{}

func (nopPresenter) Intro(string) {}
func (nopPresenter) Outro(string) {}
func (nopPresenter) Note(...string) {}

// NextStepsFunc renders hints printed after a successful run.
type NextStepsFunc func(run params.RunParameters) (string, error)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDriver injects the prompt driver.
func WithDriver(driver prompt.Driver) Option {
	return func(o *Orchestrator) {
		o.driver = driver
	}
}

// WithChecker injects the connectivity checker.
func WithChecker(checker connection.Checker) Option {
	return func(o *Orchestrator) {
		o.checker = checker
	}
}

// WithRunner injects the subprocess runner.
func WithRunner(runner scaffold.Runner) Option {
	return func(o *Orchestrator) {
		o.runner = runner
	}
}

// WithPresenter injects the presenter used for intro, outro and notes.
func WithPresenter(p Presenter) Option {
	return func(o *Orchestrator) {
		o.presenter = p
	}
}

// WithObservers registers pipeline observers in addition to the logging one.
func WithObservers(observers ...pipeline.Observer) Option {
	return func(o *Orchestrator) {
		o.observers = append(o.observers, observers...)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithProjectDefaults overrides the answers pre-selected in the project
// prompts.
func WithProjectDefaults(defaults prompt.ProjectDefaults) Option {
	return func(o *Orchestrator) {
		o.defaults = defaults
		o.defaultsSet = true
	}
}

// WithPlanConfig overrides the generator and tool settings.
func WithPlanConfig(cfg scaffold.PlanConfig) Option {
	return func(o *Orchestrator) {
		o.plan = cfg
		o.planSet = true
	}
}

// WithReadinessGate toggles the note and keypress before the connection
// prompts.
func WithReadinessGate(enabled bool) Option {
	return func(o *Orchestrator) {
		o.readinessGate = enabled
	}
}

// WithNextSteps registers the renderer for the closing hints.
func WithNextSteps(fn NextStepsFunc) Option {
	return func(o *Orchestrator) {
		o.nextSteps = fn
	}
}

// Orchestrator coordinates one wizard run.
type Orchestrator struct {
	driver        prompt.Driver
	checker       connection.Checker
	runner        scaffold.Runner
	presenter     Presenter
	observers     []pipeline.Observer
	logger        *zap.Logger
	defaults      prompt.ProjectDefaults
	defaultsSet   bool
	plan          scaffold.PlanConfig
	planSet       bool
	readinessGate bool
	nextSteps     NextStepsFunc
}

// New constructs an Orchestrator applying any provided options. Missing
// collaborators get the real implementations: the survey driver, the Data
// API checker and the exec runner.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{readinessGate: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.driver == nil {
		o.driver = prompt.NewSurveyDriver()
	}
	if o.checker == nil {
		o.checker = astra.NewChecker(nil, astra.WithLogger(o.logger))
	}
	if o.runner == nil {
		o.runner = scaffold.NewExecRunner(scaffold.WithRunnerLogger(o.logger))
	}
	if o.presenter == nil {
		o.presenter = nopPresenter{}
	}
	if !o.defaultsSet {
		o.defaults = prompt.DefaultProjectDefaults()
	}
	if !o.planSet {
		o.plan = scaffold.DefaultPlanConfig()
	}
}

// Result describes a completed or partially completed run.
type Result struct {
	Project    params.ProjectParameters
	Connection params.ConnectionParameters
	// Attempts counts connection collect-and-verify cycles.
	Attempts int
	Outcome  pipeline.Outcome
}

// Run executes the wizard: project prompts, verified connection, then the
// generation pipeline. Any error aborts the run; a pipeline error is the
// failing step's cause, unchanged. Files written before a failure stay on
// disk.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	var result Result

	o.presenter.Intro(MsgIntro)

	project, err := prompt.CollectProject(ctx, o.driver, o.defaults)
	if err != nil {
		return result, err
	}
	result.Project = project
	o.logger.Info("project configured",
		zap.String("name", project.Name),
		zap.String("language", string(project.Language)),
		zap.Bool("install", project.InstallDependencies),
	)

	if o.readinessGate {
		o.presenter.Note(ReadinessNote...)
		if err := o.driver.WaitForKey(ctx, MsgPressAnyKey); err != nil {
			return result, err
		}
	}

	acquirer, err := connection.NewAcquirer(
		func(ctx context.Context) (params.ConnectionParameters, error) {
			return prompt.CollectConnection(ctx, o.driver)
		},
		o.checker,
		connection.WithNotifier(func(_ context.Context, msg string) { o.presenter.Note(msg) }),
		connection.WithLogger(o.logger),
	)
	if err != nil {
		return result, err
	}
	acquired, err := acquirer.Acquire(ctx)
	if err != nil {
		return result, err
	}
	result.Connection = acquired.Params
	result.Attempts = acquired.Attempts

	run := params.NewRunParameters(project, acquired.Params)
	observers := append([]pipeline.Observer{pipeline.LogObserver(o.logger)}, o.observers...)
	p := pipeline.New(scaffold.Plan(o.plan, run, o.runner), pipeline.WithObserver(observers...))

	outcome, err := p.Run(ctx)
	result.Outcome = outcome
	if err != nil {
		return result, err
	}

	if o.nextSteps != nil {
		text, err := o.nextSteps(run)
		if err != nil {
			o.logger.Warn("render next steps", zap.Error(err))
		} else if text != "" {
			o.presenter.Note(strings.Split(text, "\n")...)
		}
	}

	o.presenter.Outro(MsgOutro)
	return result, nil
}
