package render_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-genai-starter/internal/config"
	"github.com/goliatone/go-genai-starter/internal/render"
	"github.com/goliatone/go-genai-starter/pkg/params"
	"github.com/goliatone/go-genai-starter/pkg/scaffold"
)

func TestEnvFormatter_MatchesPlainFormat(t *testing.T) {
	conn := params.ConnectionParameters{
		Endpoint: "https://db-us-east1.apps.astra.datastax.com",
		Token:    "AstraCS:abc&def<ghi>",
	}
	engine := render.New()

	got, err := engine.EnvFormatter(config.DefaultEnvTemplate)(conn)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want, _ := scaffold.FormatEnv(conn)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("env mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderString_GlobalsAndFilters(t *testing.T) {
	engine := render.New(render.WithGlobalData(map[string]any{"product": "Astra DB"}))
	got, err := engine.RenderString("{{ product }}: {{ name|trim }}", map[string]any{"name": "  demo  "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Astra DB: demo" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderString_ParseError(t *testing.T) {
	if _, err := render.New().RenderString("{% if %}", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNextSteps(t *testing.T) {
	engine := render.New()
	run := params.RunParameters{ProjectParameters: params.ProjectParameters{Name: "demo-app"}}

	got, err := engine.NextSteps(run, "npm")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Next steps:\n  cd demo-app\n  npm install\n  npm run dev"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("next steps mismatch (-want +got):\n%s", diff)
	}

	run.InstallDependencies = true
	got, err = engine.NextSteps(run, "npm")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "npm install") {
		t.Fatalf("install hint should be omitted after installing: %q", got)
	}
}
