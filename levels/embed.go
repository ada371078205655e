package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// ErrUnknownLevel is returned when no level matches an id.
var ErrUnknownLevel = errors.New("unknown level")

// Load reads a level by id. A file under levels/ on disk overrides the
// embedded copy.
func Load(id string) (*Level, error) {
	name, ok := fileName(id)
	if !ok {
		return nil, fmt.Errorf("levels: %q: %w", id, ErrUnknownLevel)
	}
	data, err := os.ReadFile(filepath.Join("levels", name))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("levels: %q: %w", id, ErrUnknownLevel)
		}
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes and validates level JSON.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// List returns the ids of every embedded level.
func List() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	sort.Strings(ids)
	return ids
}

// fileName maps an id to a file directly under levels/. Ids that would reach
// into another directory are refused.
func fileName(id string) (string, bool) {
	s := strings.TrimPrefix(filepath.ToSlash(id), "levels/")
	if s == "" || strings.ContainsAny(s, `/\`) || s == ".." {
		return "", false
	}
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s, true
}
