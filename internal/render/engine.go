// Package render renders the plain-text templates the wizard writes to disk
// and prints to the terminal. It wraps a pongo2 template set with
// autoescaping disabled, since none of the output is HTML.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-genai-starter/pkg/params"
	"github.com/goliatone/go-genai-starter/pkg/scaffold"
)

// Option configures the Engine before construction.
type Option func(*config)

type config struct {
	globals map[string]any
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders template strings. Parsed templates are cached by source.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// New constructs an Engine.
func New(options ...Option) *Engine {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	set := pongo2.NewSet("genai-starter", pongo2.MustNewLocalFileSystemLoader(""))
	set.Globals = pongo2.Context{}
	for key, value := range cfg.globals {
		if key == "" {
			continue
		}
		set.Globals[key] = value
	}
	registerDefaultFilters()

	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
	}
}

// RenderString renders source with data.
func (e *Engine) RenderString(source string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("render: engine is nil")
	}
	tmpl, err := e.template(source)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	return buf.String(), nil
}

// EnvFormatter returns a secrets file formatter backed by source. The
// template sees endpoint and token.
func (e *Engine) EnvFormatter(source string) scaffold.EnvFormatter {
	return func(conn params.ConnectionParameters) (string, error) {
		return e.RenderString(source, map[string]any{
			"endpoint": conn.Endpoint,
			"token":    conn.Token,
		})
	}
}

// NextSteps renders the hints printed after a successful run.
func (e *Engine) NextSteps(run params.RunParameters, installCommand string) (string, error) {
	return e.RenderString(NextStepsTemplate, map[string]any{
		"name":      run.Name,
		"installed": run.InstallDependencies,
		"install":   installCommand,
	})
}

// NextStepsTemplate lists what to do with the generated project.
const NextStepsTemplate = `Next steps:
  cd {{ name }}
{% if not installed %}  {{ install }} install
{% endif %}  {{ install }} run dev`

func (e *Engine) template(source string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[source]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[source]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromString("{% autoescape off %}" + source + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("render: parse template: %w", err)
	}
	e.templates[source] = tmpl
	return tmpl, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
