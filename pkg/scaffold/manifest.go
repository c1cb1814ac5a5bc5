package scaffold

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// ManifestFile is the generated project's dependency manifest.
	ManifestFile = "package.json"
	// DefaultDependencyName is the database client added to the manifest.
	DefaultDependencyName = "@datastax/astra-db-ts"
	// DefaultDependencyVersion pins DefaultDependencyName.
	DefaultDependencyVersion = "^1.4.1"

	dependenciesKey = "dependencies"
)

// AddDependency merges name@version into the dependencies of the manifest
// stored in projectDir and writes it back with two-space indentation. All
// other keys keep their values and their order.
func AddDependency(projectDir, name, version string) error {
	path := filepath.Join(projectDir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scaffold: read manifest: %w", err)
	}
	out, err := MergeDependency(data, name, version)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("scaffold: stat manifest: %w", err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("scaffold: write manifest: %w", err)
	}
	return nil
}

// MergeDependency returns manifest with name@version set in its dependencies.
func MergeDependency(manifest []byte, name, version string) ([]byte, error) {
	if name == "" || version == "" {
		return nil, errors.New("scaffold: dependency name and version are required")
	}
	root, err := decodeObject(manifest)
	if err != nil {
		return nil, fmt.Errorf("scaffold: parse manifest: %w", err)
	}

	deps := &object{values: map[string]json.RawMessage{}}
	if raw, ok := root.values[dependenciesKey]; ok && !isNull(raw) {
		deps, err = decodeObject(raw)
		if err != nil {
			return nil, fmt.Errorf("scaffold: manifest %q is not an object: %w", dependenciesKey, err)
		}
	}

	encodedVersion, err := marshalNoEscape(version)
	if err != nil {
		return nil, err
	}
	deps.set(name, encodedVersion)

	encodedDeps, err := deps.MarshalJSON()
	if err != nil {
		return nil, err
	}
	root.set(dependenciesKey, encodedDeps)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("scaffold: encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// object is a JSON object that remembers key order.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *object) set(key string, value json.RawMessage) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := marshalNoEscape(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(o.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeObject(data []byte) (*object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected a JSON object")
	}

	obj := &object{values: map[string]json.RawMessage{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		obj.set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return obj, nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
