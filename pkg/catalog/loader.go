package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Catalogs map[string]Catalog `json:"catalogs" yaml:"catalogs"`
}

// LoadFS walks fsys and loads every JSON/YAML catalog file. A nil filesystem
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		return store.load(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse loads a single JSON or YAML document. JSON may carry comments and
// trailing commas.
func Parse(data []byte, source string) (*Store, error) {
	store := NewStore()
	if err := store.load(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) load(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(doc.Catalogs))
	for id := range doc.Catalogs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c := doc.Catalogs[id]
		if strings.TrimSpace(c.ID) == "" {
			c.ID = id
		}
		c.Source = source
		if err := s.Add(c); err != nil {
			return err
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
