package params

import "strings"

// Language selects the flavour of the generated project.
type Language string

const (
	// LanguageTypeScript generates a TypeScript project.
	LanguageTypeScript Language = "ts"
	// LanguageJavaScript generates a JavaScript project.
	LanguageJavaScript Language = "js"
)

// Label returns the human readable name used in prompts.
func (l Language) Label() string {
	switch l {
	case LanguageTypeScript:
		return "TypeScript"
	case LanguageJavaScript:
		return "JavaScript"
	default:
		return string(l)
	}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == LanguageTypeScript || l == LanguageJavaScript
}

// ParseLanguage accepts either the short code or the label, case-insensitively.
func ParseLanguage(raw string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ts", "typescript":
		return LanguageTypeScript, true
	case "js", "javascript":
		return LanguageJavaScript, true
	default:
		return "", false
	}
}

// ProjectParameters describes the project the scaffolding tool should
// generate.
type ProjectParameters struct {
	Name                string
	Language            Language
	UseStylingFramework bool
	UseLinter           bool
	InstallDependencies bool
}

// ConnectionParameters locates and authenticates against a hosted vector
// database.
type ConnectionParameters struct {
	Endpoint string
	Token    string
}

// RunParameters is the read-only value threaded through the task pipeline.
type RunParameters struct {
	ProjectParameters
	ConnectionParameters
}

// NewRunParameters concatenates both parameter groups.
func NewRunParameters(project ProjectParameters, conn ConnectionParameters) RunParameters {
	return RunParameters{
		ProjectParameters:    project,
		ConnectionParameters: conn,
	}
}
