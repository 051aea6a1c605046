package schema

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	language "github.com/hanpama/gqlcore/internal/language"
)

// Source is one named SDL input.
type Source struct {
	Name  string
	Input string
}

// BuildFromSources parses every source and builds one schema from their
// merged definitions. Extensions may refer to types of any source.
func BuildFromSources(sources ...Source) (*Schema, error) {
	merged := &language.SchemaDocument{}
	for _, src := range sources {
		doc, err := language.ParseSchema(src.Name, src.Input)
		if err != nil {
			return nil, err
		}
		merged.Merge(doc)
	}
	return BuildFromDocument(merged)
}

// ReadSources reads path, or every .graphql file below path when it is a
// directory. Files are returned in lexical path order.
func ReadSources(path string) ([]Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return []Source{{Name: path, Input: string(data)}}, nil
	}

	var sources []Source
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".graphql" {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return fmt.Errorf("relative path of %q: %w", p, err)
		}
		sources = append(sources, Source{Name: rel, Input: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %q: %w", path, err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no .graphql files in %q", path)
	}
	return sources, nil
}
