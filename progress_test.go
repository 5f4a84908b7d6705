package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/re-ovo/fall-escape/levels"
	"github.com/re-ovo/fall-escape/storage"
)

func testEntries(n int) []LevelEntry {
	out := make([]LevelEntry, n)
	for i := range out {
		out[i] = LevelEntry{Key: string(rune('a' + i)), Level: levels.Level{{-1}}}
	}
	return out
}

func TestProgressionAdvance(t *testing.T) {
	p := NewProgression(testEntries(3))
	for want := 1; want < 3; want++ {
		next, ok := p.Advance()
		if !ok || p.Index() != want || next.Key != string(rune('a'+want)) {
			t.Fatalf("Advance() = %q, %v at index %d", next.Key, ok, p.Index())
		}
	}
	if _, ok := p.Advance(); ok || !p.Finished() {
		t.Fatalf("advancing past the last level should finish the run")
	}
	if e, ok := p.Restart(); !ok || e.Key != "a" || p.Finished() {
		t.Fatalf("Restart() = %q, %v finished=%v", e.Key, ok, p.Finished())
	}
}

func TestProgressionSelect(t *testing.T) {
	p := NewProgression(testEntries(4))
	p.Advance()
	p.Advance()
	p.Advance()
	p.Advance()

	e, err := p.Select(1)
	if err != nil || e.Key != "b" || p.Finished() {
		t.Fatalf("Select(1) = %q, %v finished=%v", e.Key, err, p.Finished())
	}
	for _, i := range []int{-1, 4} {
		if _, err := p.Select(i); err == nil {
			t.Fatalf("Select(%d) should fail", i)
		}
	}
	if p.Index() != 1 {
		t.Fatalf("failed select moved the index to %d", p.Index())
	}
}

func TestProgressionReplaceKeepsCurrent(t *testing.T) {
	p := NewProgression(testEntries(3))
	p.Select(2)
	p.Replace(append(testEntries(1), LevelEntry{Key: "x"}, LevelEntry{Key: "c"}))
	if cur, _ := p.Current(); cur.Key != "c" || p.Index() != 2 {
		t.Fatalf("expected to stay on c, got %q at %d", cur.Key, p.Index())
	}
	p.Replace(testEntries(1))
	if p.Index() != 0 {
		t.Fatalf("expected reset to 0 when the current level vanished, got %d", p.Index())
	}
}

func TestLoadEntries(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "levels.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	id, err := store.AddLevel(levels.Level{{1, -1, 1}})
	if err != nil {
		t.Fatalf("AddLevel: %v", err)
	}

	entries, err := loadEntries(store)
	if err != nil {
		t.Fatalf("loadEntries: %v", err)
	}
	builtin := len(levels.BuiltinNames())
	if len(entries) != builtin+1 {
		t.Fatalf("expected %d entries, got %d", builtin+1, len(entries))
	}
	if entries[0].Key != "builtin:01_drop.json" || entries[0].Name != "drop" || entries[0].Custom() {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	last := entries[len(entries)-1]
	if !last.Custom() || last.CustomID != id {
		t.Fatalf("custom level should come last, got %+v", last)
	}

	p := NewProgression(entries)
	if i, ok := p.Find("03_spiral"); !ok || i != 2 {
		t.Fatalf("Find(03_spiral) = %d, %v", i, ok)
	}
	if i, ok := p.Find(last.Key); !ok || i != builtin {
		t.Fatalf("Find(%s) = %d, %v", last.Key, i, ok)
	}
	if _, ok := p.Find("nope"); ok {
		t.Fatalf("Find should miss unknown names")
	}

	noStore, err := loadEntries(nil)
	if err != nil || len(noStore) != builtin {
		t.Fatalf("loadEntries(nil) = %d entries, %v", len(noStore), err)
	}
}

func TestProgressionReloadPicksUpNewLevels(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "levels.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	entries, err := loadEntries(store)
	if err != nil {
		t.Fatalf("loadEntries: %v", err)
	}
	p := NewProgression(entries)
	if _, err := p.Select(1); err != nil {
		t.Fatalf("Select: %v", err)
	}
	before := p.Len()

	id, err := store.AddLevel(levels.Level{{1, -1, 1}})
	if err != nil {
		t.Fatalf("AddLevel: %v", err)
	}
	lost, err := p.Reload(store)
	if err != nil || lost {
		t.Fatalf("Reload() = %v, %v", lost, err)
	}
	if p.Len() != before+1 || p.Index() != 1 {
		t.Fatalf("expected %d levels at index 1, got %d at %d", before+1, p.Len(), p.Index())
	}
	i, ok := p.Find(fmt.Sprintf("custom:%d", id))
	if !ok || i != before {
		t.Fatalf("new custom level not listed last: %d, %v", i, ok)
	}

	if _, err := p.Select(i); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := store.DeleteLevel(id); err != nil {
		t.Fatalf("DeleteLevel: %v", err)
	}
	lost, err = p.Reload(store)
	if err != nil || !lost {
		t.Fatalf("expected the deleted current level to be reported lost, got %v, %v", lost, err)
	}
	if p.Len() != before || p.Index() != 0 {
		t.Fatalf("expected %d levels at index 0, got %d at %d", before, p.Len(), p.Index())
	}
}

func TestEditHint(t *testing.T) {
	if h := editHint(LevelEntry{Key: "builtin:01_drop.json"}); h != "" {
		t.Fatalf("built-in levels have no edit hint, got %q", h)
	}
	if h := editHint(LevelEntry{Key: "custom:7", CustomID: 7}); h != "edit: --id 7" {
		t.Fatalf("unexpected hint %q", h)
	}
}
