package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-genai-starter/pkg/params"
)

const (
	// EnvEndpointKey names the endpoint entry of the secrets file.
	EnvEndpointKey = "ASTRA_DB_ENDPOINT"
	// EnvTokenKey names the token entry of the secrets file.
	EnvTokenKey = "ASTRA_DB_TOKEN"
	// DefaultEnvFile is the secrets file name at the project root.
	DefaultEnvFile = ".env"
)

// EnvFormatter renders the secrets file body.
type EnvFormatter func(conn params.ConnectionParameters) (string, error)

// FormatEnv writes the endpoint line followed by the token line.
func FormatEnv(conn params.ConnectionParameters) (string, error) {
	return fmt.Sprintf("%s=%s\n%s=%s", EnvEndpointKey, conn.Endpoint, EnvTokenKey, conn.Token), nil
}

// WriteEnvFile renders conn with format and writes it to dir/name. The file
// holds a secret, so it is created owner-readable only.
func WriteEnvFile(dir, name string, conn params.ConnectionParameters, format EnvFormatter) error {
	if format == nil {
		format = FormatEnv
	}
	if name == "" {
		name = DefaultEnvFile
	}
	body, err := format(conn)
	if err != nil {
		return fmt.Errorf("scaffold: render env file: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		return fmt.Errorf("scaffold: write %s: %w", path, err)
	}
	return nil
}
