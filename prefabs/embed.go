package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Tuning specs and trigger scripts ship inside the binary. A file with the
// same name under prefabs/ in the working directory wins, which is what the
// -watch hot reload edits.
var (
	//go:embed *.yaml
	PrefabsFS embed.FS

	//go:embed scripts/*.tengo
	ScriptsFS embed.FS
)

// Load returns a tuning spec such as "player.yaml" or "prefabs/world".
func Load(name string) ([]byte, error) {
	return readOverride(PrefabsFS, normalize(name, "", ".yaml"))
}

// LoadScript returns a trigger script such as "alarm" or "scripts/alarm.tengo".
func LoadScript(name string) ([]byte, error) {
	return readOverride(ScriptsFS, normalize(name, "scripts", ".tengo"))
}

// Scripts lists the embedded script names.
func Scripts() []string {
	entries, err := fs.ReadDir(ScriptsFS, "scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func readOverride(fsys embed.FS, name string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(name))); err == nil {
		return data, nil
	}
	return fsys.ReadFile(name)
}

// normalize strips any prefabs/ or dir/ prefix, adds ext when missing and
// returns the slash path inside the embedded tree.
func normalize(name, dir, ext string) string {
	if name == "" {
		return ""
	}
	s := strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
	if dir != "" {
		s = strings.TrimPrefix(s, dir+"/")
	}
	if path.Ext(s) == "" {
		s += ext
	}
	return path.Join(dir, s)
}
