package main

import (
	"fmt"
	"strings"

	"github.com/re-ovo/fall-escape/levels"
	"github.com/re-ovo/fall-escape/storage"
)

// LevelEntry is one playable level in the run order.
type LevelEntry struct {
	Key   string
	Name  string
	Level levels.Level
	// CustomID is the storage ID of a user-authored level, 0 for built-ins.
	CustomID int64
}

func (e LevelEntry) Custom() bool { return e.CustomID != 0 }

// loadEntries returns the built-in levels followed by the stored custom
// levels. store may be nil.
func loadEntries(store *storage.Store) ([]LevelEntry, error) {
	names := levels.BuiltinNames()
	entries := make([]LevelEntry, 0, len(names))
	for _, name := range names {
		lvl, err := levels.LoadLevelFromFS(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LevelEntry{
			Key:   "builtin:" + name,
			Name:  builtinTitle(name),
			Level: lvl,
		})
	}
	if store == nil {
		return entries, nil
	}

	custom, err := store.Levels()
	if err != nil {
		return nil, err
	}
	for _, c := range custom {
		entries = append(entries, LevelEntry{
			Key:      c.Key(),
			Name:     fmt.Sprintf("custom #%d", c.ID),
			Level:    c.Level,
			CustomID: c.ID,
		})
	}
	return entries, nil
}

// builtinTitle turns "03_spiral.json" into "spiral".
func builtinTitle(name string) string {
	name = strings.TrimSuffix(name, ".json")
	if i := strings.IndexByte(name, '_'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

// Progression walks the level list: each completion moves to the next
// level until the last one, after which the run is finished.
type Progression struct {
	entries  []LevelEntry
	current  int
	finished bool
}

func NewProgression(entries []LevelEntry) *Progression {
	return &Progression{entries: entries}
}

func (p *Progression) Len() int   { return len(p.entries) }
func (p *Progression) Index() int { return p.current }

func (p *Progression) Entries() []LevelEntry {
	return append([]LevelEntry(nil), p.entries...)
}

func (p *Progression) Current() (LevelEntry, bool) {
	if p.current < 0 || p.current >= len(p.entries) {
		return LevelEntry{}, false
	}
	return p.entries[p.current], true
}

func (p *Progression) Finished() bool { return p.finished }

// Select jumps to level i and clears the finished state.
func (p *Progression) Select(i int) (LevelEntry, error) {
	if i < 0 || i >= len(p.entries) {
		return LevelEntry{}, fmt.Errorf("level %d out of range (have %d)", i+1, len(p.entries))
	}
	p.current = i
	p.finished = false
	return p.entries[i], nil
}

// Find returns the index of the entry whose key or built-in file name
// matches name.
func (p *Progression) Find(name string) (int, bool) {
	want := strings.TrimSuffix(name, ".json")
	for i, e := range p.entries {
		key := strings.TrimSuffix(strings.TrimPrefix(e.Key, "builtin:"), ".json")
		if e.Key == name || key == want || e.Name == want {
			return i, true
		}
	}
	return 0, false
}

// Advance moves past the current level. ok is false when it was the last
// one; the progression is then finished.
func (p *Progression) Advance() (next LevelEntry, ok bool) {
	if p.current+1 < len(p.entries) {
		p.current++
		return p.entries[p.current], true
	}
	p.finished = true
	return LevelEntry{}, false
}

func (p *Progression) Restart() (LevelEntry, bool) {
	p.finished = false
	p.current = 0
	return p.Current()
}

// Replace swaps the level list, keeping the current entry when its key is
// still present.
func (p *Progression) Replace(entries []LevelEntry) {
	key := ""
	if cur, ok := p.Current(); ok {
		key = cur.Key
	}
	p.entries = entries
	p.current = 0
	for i, e := range entries {
		if e.Key == key {
			p.current = i
			break
		}
	}
}

// Reload re-reads the level list from store so levels saved by the editor
// while the game runs show up. lost reports that the current entry is gone.
func (p *Progression) Reload(store *storage.Store) (lost bool, err error) {
	entries, err := loadEntries(store)
	if err != nil {
		return false, err
	}
	key := ""
	if cur, ok := p.Current(); ok {
		key = cur.Key
	}
	p.Replace(entries)
	cur, _ := p.Current()
	return key != "" && cur.Key != key, nil
}
