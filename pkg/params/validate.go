package params

import (
	"strings"
	"unicode"
)

const (
	// EndpointScheme is the only scheme accepted for database endpoints.
	EndpointScheme = "https://"
	// EndpointDomain marks endpoints that belong to the managed database
	// service.
	EndpointDomain = ".apps.astra.datastax.com"
	// TokenPrefix marks application tokens issued by the service.
	TokenPrefix = "AstraCS:"

	// MsgInvalidEndpoint is reported when an endpoint fails ValidateEndpoint.
	MsgInvalidEndpoint = "Valid API endpoint is required!"
	// MsgInvalidToken is reported when a token fails ValidateToken.
	MsgInvalidToken = "Valid token is required!"
	// MsgInvalidName is reported when a project name fails ValidateProjectName.
	MsgInvalidName = "Project name may only contain letters, digits, '-', '_' and '.'"
)

// ValidateEndpoint returns an empty string when raw looks like a managed
// database endpoint. Matching is case-sensitive.
func ValidateEndpoint(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, EndpointScheme) || !strings.Contains(raw, EndpointDomain) {
		return MsgInvalidEndpoint
	}
	return ""
}

// ValidateToken returns an empty string when raw carries the application
// token prefix.
func ValidateToken(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, TokenPrefix) {
		return MsgInvalidToken
	}
	return ""
}

// ValidateProjectName checks that name can be used as a directory name and as
// the scaffolding tool's positional argument.
func ValidateProjectName(name string) string {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, "-") {
		return MsgInvalidName
	}
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
		case r == '-', r == '_', r == '.':
		default:
			return MsgInvalidName
		}
	}
	return ""
}

// Validate applies the syntactic checks to both connection fields.
func (c ConnectionParameters) Validate() string {
	if msg := ValidateEndpoint(c.Endpoint); msg != "" {
		return msg
	}
	return ValidateToken(c.Token)
}
