package preferences_test

import (
	"fmt"
	"testing"

	"simplstream/models"
	"simplstream/services/preferences"
)

func newService(t *testing.T) *preferences.Service {
	t.Helper()
	svc, err := preferences.NewService(t.TempDir())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSearchHistoryEnabledByDefault(t *testing.T) {
	svc := newService(t)

	if !svc.SearchHistoryEnabled("p1") {
		t.Fatal("expected search history on by default")
	}
}

func TestRecordAndListSearches(t *testing.T) {
	svc := newService(t)

	for _, q := range []string{"fight club", "inception"} {
		if err := svc.RecordSearch("p1", q); err != nil {
			t.Fatalf("RecordSearch %q: %v", q, err)
		}
	}

	history, err := svc.SearchHistory("p1")
	if err != nil {
		t.Fatalf("SearchHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Query != "fight club" || history[1].Query != "inception" {
		t.Fatal("expected searches recorded oldest first")
	}
}

func TestDisableErasesLog(t *testing.T) {
	svc := newService(t)

	svc.RecordSearch("p1", "something")
	if err := svc.SetSearchHistoryEnabled("p1", false); err != nil {
		t.Fatalf("SetSearchHistoryEnabled: %v", err)
	}

	history, _ := svc.SearchHistory("p1")
	if len(history) != 0 {
		t.Fatalf("expected log erased on disable, got %d entries", len(history))
	}

	// Recording while disabled is a silent no-op.
	if err := svc.RecordSearch("p1", "ignored"); err != nil {
		t.Fatalf("RecordSearch while disabled: %v", err)
	}
	history, _ = svc.SearchHistory("p1")
	if len(history) != 0 {
		t.Fatalf("expected no entries while disabled, got %d", len(history))
	}
}

func TestSearchLogCapped(t *testing.T) {
	svc := newService(t)

	for i := 0; i < 60; i++ {
		svc.RecordSearch("p1", fmt.Sprintf("query %d", i))
	}

	history, _ := svc.SearchHistory("p1")
	if len(history) != 50 {
		t.Fatalf("expected log capped at 50, got %d", len(history))
	}
	if history[0].Query != "query 10" {
		t.Fatalf("expected oldest entries dropped, first is %q", history[0].Query)
	}
}

func TestClearSearchHistoryKeepsToggle(t *testing.T) {
	svc := newService(t)

	svc.RecordSearch("p1", "something")
	if err := svc.ClearSearchHistory("p1"); err != nil {
		t.Fatalf("ClearSearchHistory: %v", err)
	}

	history, _ := svc.SearchHistory("p1")
	if len(history) != 0 {
		t.Fatal("expected log cleared")
	}
	if !svc.SearchHistoryEnabled("p1") {
		t.Fatal("expected collection still enabled after clear")
	}
}

func TestSetAvatarClamps(t *testing.T) {
	svc := newService(t)

	err := svc.SetAvatar("p1", models.CustomAvatar{
		URL:      "https://example.com/a.png",
		Position: models.AvatarPosition{X: -5, Y: 120},
		Zoom:     0.4,
	})
	if err != nil {
		t.Fatalf("SetAvatar: %v", err)
	}

	prefs, err := svc.Get("p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if prefs.Avatar == nil {
		t.Fatal("expected avatar stored")
	}
	if prefs.Avatar.Zoom != 1 {
		t.Fatalf("expected zoom clamped to 1, got %v", prefs.Avatar.Zoom)
	}
	if prefs.Avatar.Position.X != 0 || prefs.Avatar.Position.Y != 100 {
		t.Fatalf("expected position clamped to 0..100, got %v,%v", prefs.Avatar.Position.X, prefs.Avatar.Position.Y)
	}
}

func TestClearAvatar(t *testing.T) {
	svc := newService(t)

	svc.SetAvatar("p1", models.CustomAvatar{URL: "https://example.com/a.png", Zoom: 2})
	if err := svc.ClearAvatar("p1"); err != nil {
		t.Fatalf("ClearAvatar: %v", err)
	}

	prefs, _ := svc.Get("p1")
	if prefs.Avatar != nil {
		t.Fatal("expected avatar removed")
	}
}

func TestPersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	svc, err := preferences.NewService(dir)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.SetSearchHistoryEnabled("p1", false)

	reopened, err := preferences.NewService(dir)
	if err != nil {
		t.Fatalf("NewService reopen: %v", err)
	}
	if reopened.SearchHistoryEnabled("p1") {
		t.Fatal("expected disabled flag to survive restart")
	}
}
