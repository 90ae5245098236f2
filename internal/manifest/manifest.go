// Package manifest handles reading and rewriting the package.json manifest
// that holds the authoritative version field.
//
// Editor package manifests are plain JSON, but files touched by hand
// occasionally carry comments or trailing commas, so this package uses
// github.com/tidwall/jsonc to strip JSONC constructs before parsing with the
// standard encoding/json library.
//
// Key responsibilities:
//   - Load and parse package.json (with JSONC tolerance)
//   - Expose the current "version" field and the package display name
//   - Write the bumped version back while preserving every other field,
//     re-serialized with stable 2-space indentation
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// FileName is the manifest file name looked up in each release target
// directory.
const FileName = "package.json"

// Manifest is an in-memory package.json document. The document is parsed
// into a generic map so that fields this tool does not model are preserved
// verbatim when the file is written back. The typed accessors only ever
// touch the "version" and "name" fields.
type Manifest struct {
	path   string
	fields map[string]interface{}
}

// Load reads <dir>/package.json, strips JSONC comments, and parses it.
//
// Returns an error if the file is missing or unparsable; the caller treats
// either as fatal to the release run for that directory, before anything
// has been mutated.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found in %s", FileName, dir)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Strip JSONC comments (// and /* */) and trailing commas before
	// parsing. encoding/json alone would reject such files.
	cleanJSON := jsonc.ToJSON(data)

	// Parse into a generic map rather than a typed struct. A typed struct
	// would silently drop every field it does not declare when the manifest
	// is serialized back, which violates the preserve-all-fields contract.
	var fields map[string]interface{}
	if err := json.Unmarshal(cleanJSON, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &Manifest{path: path, fields: fields}, nil
}

// Path returns the absolute path of the loaded manifest file.
func (m *Manifest) Path() string {
	return m.path
}

// Version returns the raw "version" field. Returns an error if the field is
// absent or not a string — the pipeline needs a string to parse and bump.
func (m *Manifest) Version() (string, error) {
	raw, ok := m.fields["version"]
	if !ok {
		return "", fmt.Errorf("%s has no \"version\" field", m.path)
	}
	version, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s \"version\" field is not a string", m.path)
	}
	return version, nil
}

// Name returns the package display name: the manifest "name" field when it
// is a non-empty string, otherwise the base name of the directory holding
// the manifest.
func (m *Manifest) Name() string {
	if raw, ok := m.fields["name"]; ok {
		if name, ok := raw.(string); ok && name != "" {
			return name
		}
	}
	return filepath.Base(filepath.Dir(m.path))
}

// WriteVersion updates the "version" field and writes the manifest back to
// its original path. All other fields are preserved, and the output uses
// 2-space indentation with a trailing newline, matching how package.json
// files are conventionally formatted.
//
// The in-memory document keeps the new version even if the write fails;
// the caller reports the failure and makes no further use of the manifest.
func (m *Manifest) WriteVersion(version string) error {
	m.fields["version"] = version

	data, err := json.MarshalIndent(m.fields, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", m.path, err)
	}

	// Trailing newline for POSIX compliance; editors and linters expect
	// text files to end with one.
	data = append(data, '\n')

	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.path, err)
	}
	return nil
}
