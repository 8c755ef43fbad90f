package session

import (
	"os"
	"path/filepath"
	"testing"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
)

const log = `{
  ":seed": "ABCDEF1234",
  "settings": {"world_count": 1, "bridge": "medallions"},
  "item_pool": {"Bombs (5)": 2, "Bombs (10)": 1, "Bow": 1}
}`

func TestRunCachesSuccesses(t *testing.T) {
	s, err := Paste(aliases.Default(), log)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Run("settings bridge")
	if err != nil {
		t.Fatal(err)
	}
	if got != "bridge: medallions" {
		t.Errorf("got %q", got)
	}
	if s.Cached() != 1 {
		t.Errorf("got %d cached results, want 1", s.Cached())
	}
	if got, err = s.Run("SETTINGS  Bridge"); err != nil || got != "bridge: medallions" {
		t.Errorf("got (%q, %v)", got, err)
	}
	if s.Cached() != 1 {
		t.Errorf("differently cased query wasn't served from the cache, %d cached", s.Cached())
	}
	if got, err = s.Run("setting BRIDGE"); err != nil || got != "bridge: medallions" {
		t.Errorf("got (%q, %v)", got, err)
	}
	if s.Cached() != 1 {
		t.Errorf("another alias of the key wasn't served from the cache, %d cached", s.Cached())
	}
	for _, line := range []string{"pool bombs", "ip bombs", "Items BOMBS"} {
		if _, err := s.Run(line); err != nil {
			t.Fatal(err)
		}
	}
	if s.Cached() != 2 {
		t.Errorf("got %d cached results after three spellings of one query, want 2", s.Cached())
	}
	for i := 0; i < 2; i++ {
		if _, err := s.Run("settings rainbow"); spoilers.KindOf(err) != spoilers.UnknownAlias {
			t.Errorf("got %v, want UnknownAlias", err)
		}
	}
	if s.Cached() != 2 {
		t.Errorf("failures were cached, %d cached", s.Cached())
	}
}

func TestLookupReturnsSameResult(t *testing.T) {
	s, err := Paste(aliases.Default(), log)
	if err != nil {
		t.Fatal(err)
	}
	first, err := s.Lookup([]string{"items", "bombs"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Lookup([]string{"items", "bombs"})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("second lookup wasn't served from the cache")
	}
	if first.Key != "item_pool" {
		t.Errorf("got key %q", first.Key)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spoiler.json")
	if err := os.WriteFile(path, []byte(log), 0600); err != nil {
		t.Fatal(err)
	}
	s, err := Open(aliases.Default(), path)
	if err != nil {
		t.Fatal(err)
	}
	if got, err := s.Run("seed"); err != nil || got != "ABCDEF1234" {
		t.Errorf("got (%q, %v)", got, err)
	}
	if s.Document().WorldCount() != 1 {
		t.Errorf("got %d worlds", s.Document().WorldCount())
	}
	if _, err := Open(aliases.Default(), filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("wanted an error for a missing file")
	}
}

func TestPasteInvalid(t *testing.T) {
	for _, text := range []string{"", "  \n", "{", `["a"]`} {
		if _, err := Paste(aliases.Default(), text); spoilers.KindOf(err) != spoilers.InvalidDocument {
			t.Errorf("Paste(%q) = %v, want InvalidDocument", text, err)
		}
	}
}
