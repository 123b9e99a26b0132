package watchlist_test

import (
	"errors"
	"testing"

	"simplstream/services/watchlist"
)

func newService(t *testing.T) *watchlist.Service {
	t.Helper()
	svc, err := watchlist.NewService(t.TempDir())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAddIsIdempotent(t *testing.T) {
	svc := newService(t)

	first, err := svc.Add("p1", 550, "movie", "Fight Club", "/poster.jpg")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := svc.Add("p1", 550, "movie", "Fight Club", "/poster.jpg")
	if err != nil {
		t.Fatalf("Add repeat: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected repeat add to return existing item, got %s and %s", first.ID, second.ID)
	}

	list, err := svc.List("p1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 item after double add, got %d", len(list))
	}
}

func TestContainsIgnoresMediaType(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Add("p1", 550, "movie", "Fight Club", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// A show with the same tmdb id counts as present.
	if !svc.Contains("p1", 550) {
		t.Fatal("expected Contains to match by tmdb id")
	}
	if item, err := svc.Add("p1", 550, "tv", "Some Show", ""); err != nil {
		t.Fatalf("Add tv: %v", err)
	} else if item.MediaType != "movie" {
		t.Fatalf("expected existing movie entry to win, got %s", item.MediaType)
	}
}

func TestRemove(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Add("p1", 550, "movie", "Fight Club", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Remove("p1", 550); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if svc.Contains("p1", 550) {
		t.Fatal("expected item removed")
	}

	// Removing again is a no-op.
	if err := svc.Remove("p1", 550); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
}

func TestListInsertionOrder(t *testing.T) {
	svc := newService(t)

	svc.Add("p1", 1, "movie", "A", "")
	svc.Add("p1", 2, "movie", "B", "")
	svc.Add("p1", 3, "tv", "C", "")

	list, err := svc.List("p1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list))
	}
	for i, want := range []int64{1, 2, 3} {
		if list[i].TMDBID != want {
			t.Fatalf("expected item %d to be %d, got %d", i, want, list[i].TMDBID)
		}
	}
}

func TestProfilesAreIsolated(t *testing.T) {
	svc := newService(t)

	svc.Add("p1", 550, "movie", "Fight Club", "")

	if svc.Contains("p2", 550) {
		t.Fatal("expected p2 watchlist to be empty")
	}
	list, err := svc.List("p2")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list for p2, got %d items", len(list))
	}
}

func TestClear(t *testing.T) {
	svc := newService(t)

	svc.Add("p1", 1, "movie", "A", "")
	svc.Add("p1", 2, "movie", "B", "")

	if err := svc.Clear("p1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	list, _ := svc.List("p1")
	if len(list) != 0 {
		t.Fatalf("expected empty list after clear, got %d", len(list))
	}
}

func TestValidation(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Add("", 550, "movie", "X", ""); !errors.Is(err, watchlist.ErrProfileIDRequired) {
		t.Fatalf("expected ErrProfileIDRequired, got %v", err)
	}
	if _, err := svc.Add("p1", 0, "movie", "X", ""); !errors.Is(err, watchlist.ErrTMDBIDRequired) {
		t.Fatalf("expected ErrTMDBIDRequired, got %v", err)
	}
	if _, err := svc.Add("p1", 550, "  ", "X", ""); !errors.Is(err, watchlist.ErrMediaTypeRequired) {
		t.Fatalf("expected ErrMediaTypeRequired, got %v", err)
	}
}

func TestPersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	svc, err := watchlist.NewService(dir)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.Add("p1", 550, "movie", "Fight Club", "")

	reopened, err := watchlist.NewService(dir)
	if err != nil {
		t.Fatalf("NewService reopen: %v", err)
	}
	if !reopened.Contains("p1", 550) {
		t.Fatal("expected watchlist to survive restart")
	}
}
