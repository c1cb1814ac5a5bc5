package prompt

import (
	"context"

	"github.com/goliatone/go-genai-starter/pkg/params"
)

// Field names used by the project and connection groups.
const (
	FieldName     = "name"
	FieldLanguage = "language"
	FieldStyling  = "styling"
	FieldLinter   = "linter"
	FieldInstall  = "install"
	FieldEndpoint = "endpoint"
	FieldToken    = "token"
)

// ProjectDefaults seeds the initial answers offered by the project group.
type ProjectDefaults struct {
	Name     string
	Language params.Language
	Styling  bool
	Linter   bool
	Install  bool
}

// DefaultProjectDefaults mirrors the answers a user gets by pressing enter
// through every project question.
func DefaultProjectDefaults() ProjectDefaults {
	return ProjectDefaults{
		Name:     "my-gen-ai-app",
		Language: params.LanguageTypeScript,
		Styling:  true,
		Linter:   false,
		Install:  true,
	}
}

// ProjectFields returns the questions that produce ProjectParameters.
func ProjectFields(defaults ProjectDefaults) []Field {
	return []Field{
		{Name: FieldName, Question: Text{
			Message:     "What is the name of your future GenAI app?",
			Placeholder: defaults.Name,
			Default:     defaults.Name,
			Validate:    params.ValidateProjectName,
		}},
		{Name: FieldLanguage, Question: Select{
			Message: "Will you be using TypeScript or JavaScript?",
			Options: []Option{
				{Value: string(params.LanguageTypeScript), Label: params.LanguageTypeScript.Label()},
				{Value: string(params.LanguageJavaScript), Label: params.LanguageJavaScript.Label()},
			},
			Initial: string(defaults.Language),
		}},
		{Name: FieldStyling, Question: Confirm{
			Message: "Would you like to use Tailwind CSS?",
			Initial: defaults.Styling,
		}},
		{Name: FieldLinter, Question: Confirm{
			Message: "Would you like to use ESLint?",
			Initial: defaults.Linter,
		}},
		{Name: FieldInstall, Question: Confirm{
			Message: "Do you want us to install dependencies?",
			Initial: defaults.Install,
		}},
	}
}

// ConnectionFields returns the questions that produce ConnectionParameters.
// They carry no defaults: every attempt starts from scratch.
func ConnectionFields() []Field {
	return []Field{
		{Name: FieldEndpoint, Question: Text{
			Message:     "What is your database's API endpoint?",
			Placeholder: "https://<DB ID>-<REGION>.apps.astra.datastax.com",
			Validate:    params.ValidateEndpoint,
		}},
		{Name: FieldToken, Question: Text{
			Message:     "And what is your Astra application token?",
			Placeholder: params.TokenPrefix + "XXX",
			Secret:      true,
			Validate:    params.ValidateToken,
		}},
	}
}

// CollectProject runs the project group.
func CollectProject(ctx context.Context, d Driver, defaults ProjectDefaults) (params.ProjectParameters, error) {
	answers, err := Group(ctx, d, ProjectFields(defaults)...)
	if err != nil {
		return params.ProjectParameters{}, err
	}
	return params.ProjectParameters{
		Name:                answers.String(FieldName),
		Language:            params.Language(answers.String(FieldLanguage)),
		UseStylingFramework: answers.Bool(FieldStyling),
		UseLinter:           answers.Bool(FieldLinter),
		InstallDependencies: answers.Bool(FieldInstall),
	}, nil
}

// CollectConnection runs the connection group.
func CollectConnection(ctx context.Context, d Driver) (params.ConnectionParameters, error) {
	answers, err := Group(ctx, d, ConnectionFields()...)
	if err != nil {
		return params.ConnectionParameters{}, err
	}
	return params.ConnectionParameters{
		Endpoint: answers.String(FieldEndpoint),
		Token:    answers.String(FieldToken),
	}, nil
}
