package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mmcdole/popcorn/internal/domain"
)

const watchedKey = "watched"

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "popcorn.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return s, path
}

func sampleEntries() []domain.WatchedEntry {
	return []domain.WatchedEntry{
		{ID: "tt1375666", Title: "Inception", Year: "2010", PosterURL: "https://img/inception.jpg", ExternalRating: 8.8, RuntimeMinutes: 148, UserRating: 10},
		{ID: "tt0088763", Title: "Back to the Future", Year: "1985", PosterURL: "https://img/bttf.jpg", ExternalRating: 8.5, RuntimeMinutes: 116, UserRating: 9},
		{ID: "tt6751668", Title: "Parasite", Year: "2019", PosterURL: "https://img/parasite.jpg", ExternalRating: 8.5, RuntimeMinutes: 132, UserRating: 8},
	}
}

func fill(t *testing.T, list *List[domain.WatchedEntry], entries []domain.WatchedEntry) {
	t.Helper()
	for _, e := range entries {
		if err := list.Append(e); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
}

func TestStore(t *testing.T) {
	t.Run("Load Missing Key", func(t *testing.T) {
		s, _ := openTemp(t)
		defer s.Close()

		var items []domain.WatchedEntry
		if s.Load(watchedKey, &items) {
			t.Fatal("expected Load to report a missing slot")
		}
		if items != nil {
			t.Errorf("expected dest untouched, got %v", items)
		}
	})

	t.Run("Save Then Load", func(t *testing.T) {
		s, _ := openTemp(t)
		defer s.Close()

		if err := s.Save(watchedKey, sampleEntries()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		var items []domain.WatchedEntry
		if !s.Load(watchedKey, &items) {
			t.Fatal("expected Load to succeed")
		}
		if !reflect.DeepEqual(items, sampleEntries()) {
			t.Errorf("round trip mismatch: %+v", items)
		}
	})

	t.Run("Failed Write Keeps Cache", func(t *testing.T) {
		s, _ := openTemp(t)
		if err := s.Save(watchedKey, sampleEntries()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		s.db.Close()

		if err := s.Save(watchedKey, sampleEntries()[:1]); err == nil {
			t.Fatal("expected save on a closed database to fail")
		}
		var items []domain.WatchedEntry
		if !s.Load(watchedKey, &items) || len(items) != 3 {
			t.Errorf("expected cached slot to keep the last written value, got %d items", len(items))
		}
	})

	t.Run("Memory Only Mode", func(t *testing.T) {
		s, err := Open("")
		if err != nil {
			t.Fatalf("failed to open memory store: %v", err)
		}
		if err := s.Save(watchedKey, sampleEntries()[:1]); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		var items []domain.WatchedEntry
		if !s.Load(watchedKey, &items) || len(items) != 1 {
			t.Errorf("expected one item from memory store, got %v", items)
		}
		if err := s.Close(); err != nil {
			t.Errorf("close of memory store returned %v", err)
		}
	})
}

func TestList(t *testing.T) {
	t.Run("Append Survives Reopen", func(t *testing.T) {
		s, path := openTemp(t)
		list := NewList[domain.WatchedEntry](s, watchedKey, nil)

		entry := sampleEntries()[0]
		if err := list.Append(entry); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}

		reopened, err := Open(path)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer reopened.Close()

		got := NewList[domain.WatchedEntry](reopened, watchedKey, nil).Items()
		if len(got) != 1 {
			t.Fatalf("expected 1 entry after reopen, got %d", len(got))
		}
		if got[0] != entry {
			t.Errorf("expected %+v, got %+v", entry, got[0])
		}
	})

	t.Run("Failed Append Leaves Items", func(t *testing.T) {
		s, _ := openTemp(t)
		list := NewList[domain.WatchedEntry](s, watchedKey, nil)
		fill(t, list, sampleEntries()[:1])
		s.db.Close()

		if err := list.Append(sampleEntries()[1]); err == nil {
			t.Fatal("expected append on a closed database to fail")
		}
		if got := list.Items(); len(got) != 1 {
			t.Errorf("expected items unchanged after failed write, got %d", len(got))
		}
	})

	t.Run("RemoveFunc Preserves Order", func(t *testing.T) {
		s, path := openTemp(t)
		list := NewList[domain.WatchedEntry](s, watchedKey, nil)
		fill(t, list, sampleEntries())

		removed, err := list.RemoveFunc(func(e domain.WatchedEntry) bool { return e.ID == "tt0088763" })
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if removed != 1 {
			t.Errorf("expected 1 removed, got %d", removed)
		}

		all := sampleEntries()
		want := []domain.WatchedEntry{all[0], all[2]}
		if got := list.Items(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %+v, got %+v", want, got)
		}

		s.Close()
		reopened, err := Open(path)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer reopened.Close()
		if got := NewList[domain.WatchedEntry](reopened, watchedKey, nil).Items(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected removal persisted, got %+v", got)
		}
	})

	t.Run("RemoveFunc No Match", func(t *testing.T) {
		s, _ := openTemp(t)
		defer s.Close()
		list := NewList[domain.WatchedEntry](s, watchedKey, nil)
		fill(t, list, sampleEntries())

		removed, err := list.RemoveFunc(func(e domain.WatchedEntry) bool { return e.ID == "missing" })
		if err != nil || removed != 0 {
			t.Errorf("expected (0, nil), got (%d, %v)", removed, err)
		}
		if got := list.Items(); len(got) != 3 {
			t.Errorf("expected list unchanged, got %d items", len(got))
		}
	})

	t.Run("Malformed Slot Loads Empty", func(t *testing.T) {
		s, _ := openTemp(t)
		defer s.Close()
		if err := s.Save(watchedKey, "not a list"); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		list := NewList[domain.WatchedEntry](s, watchedKey, nil)
		if got := list.Items(); got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil list, got %#v", got)
		}
	})

	t.Run("Items Returns Copy", func(t *testing.T) {
		s, _ := Open("")
		list := NewList[domain.WatchedEntry](s, watchedKey, nil)
		fill(t, list, sampleEntries())

		items := list.Items()
		items[0].Title = "mutated"
		if list.Items()[0].Title != "Inception" {
			t.Error("expected Items to return an independent copy")
		}
	})
}
