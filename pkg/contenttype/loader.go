package contenttype

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	ContentTypes []Definition `json:"contentTypes" yaml:"contentTypes"`
}

// LoadFS walks fsys and parses every JSON/YAML document it finds. Definitions
// are returned in walk order; duplicates across files are rejected.
func LoadFS(fsys fs.FS) ([]Definition, error) {
	if fsys == nil {
		return nil, nil
	}

	var (
		out  []Definition
		seen = make(map[string]string)
	)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("contenttype: read %s: %w", path, err)
		}
		defs, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if prev, dup := seen[def.ID]; dup {
				return fmt.Errorf("contenttype: duplicate content type %q (files %s, %s)", def.ID, prev, path)
			}
			seen[def.ID] = path
			out = append(out, def)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFile parses a single definition document, or every document under path
// when it is a directory.
func LoadFile(path string) ([]Definition, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("contenttype: definition path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("contenttype: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("contenttype: read %s: %w", path, err)
	}
	return parseDocument(data, path)
}

func parseDocument(data []byte, source string) ([]Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("contenttype: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("contenttype: parse %s: invalid JSON or YAML", source)
		}
	}

	out := make([]Definition, 0, len(doc.ContentTypes))
	for _, def := range doc.ContentTypes {
		def.ID = normaliseID(def.ID)
		if err := Validate(def); err != nil {
			return nil, fmt.Errorf("contenttype: file %s: %w", source, err)
		}
		out = append(out, def)
	}
	return out, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadRegistry returns Default() when path is empty, otherwise a new registry
// with the definitions found at path merged over the built-ins.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	defs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Default().Merge(defs...)
}
