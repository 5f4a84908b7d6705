package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed *.json
var LevelsFS embed.FS

func LoadLevelFromFS(name string) (Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lvl, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return lvl, nil
}

// BuiltinNames lists the embedded level files in play order.
func BuiltinNames() []string {
	names, err := fs.Glob(LevelsFS, "*.json")
	if err != nil {
		return nil
	}
	sort.Strings(names)
	return names
}

// Builtin loads every embedded level in play order.
func Builtin() ([]Level, error) {
	names := BuiltinNames()
	out := make([]Level, 0, len(names))
	for _, name := range names {
		lvl, err := LoadLevelFromFS(name)
		if err != nil {
			return nil, err
		}
		out = append(out, lvl)
	}
	return out, nil
}
