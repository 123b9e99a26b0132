package profiles_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"simplstream/models"
	"simplstream/services/profiles"
)

func newService(t *testing.T) *profiles.Service {
	t.Helper()
	svc, err := profiles.NewService(t.TempDir())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateAndGet(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create("  Kids  ", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Name != "Kids" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.AvatarColor == "" {
		t.Fatal("expected a default avatar color")
	}
	if !created.FirstLogin {
		t.Fatal("expected new profile to be marked first login")
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected profile %s, got %s", created.ID, got.ID)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Create("   ", "", "", ""); !errors.Is(err, profiles.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestCreateWithPin(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Create("Alice", "", "12ab", "otter"); !errors.Is(err, profiles.ErrInvalidPin) {
		t.Fatalf("expected ErrInvalidPin for non-digit pin, got %v", err)
	}
	if _, err := svc.Create("Alice", "", "1234", ""); !errors.Is(err, profiles.ErrSecurityWordRequired) {
		t.Fatalf("expected ErrSecurityWordRequired, got %v", err)
	}

	created, err := svc.Create("Alice", "", "1234", "Otter")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.View().HasPin {
		t.Fatal("expected HasPin to be true")
	}

	if err := svc.VerifyPin(created.ID, "1234"); err != nil {
		t.Fatalf("VerifyPin correct: %v", err)
	}
	if err := svc.VerifyPin(created.ID, "9999"); !errors.Is(err, profiles.ErrPinMismatch) {
		t.Fatalf("expected ErrPinMismatch, got %v", err)
	}
	if err := svc.VerifySecurityWord(created.ID, "OTTER"); err != nil {
		t.Fatalf("expected case-insensitive security word match: %v", err)
	}
	if err := svc.VerifySecurityWord(created.ID, "ferret"); !errors.Is(err, profiles.ErrSecurityWordMismatch) {
		t.Fatalf("expected ErrSecurityWordMismatch, got %v", err)
	}
}

func TestVerifyPinWithoutPin(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create("Open", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.VerifyPin(created.ID, "anything"); err != nil {
		t.Fatalf("expected pinless profile to accept any attempt, got %v", err)
	}
}

func TestClearPin(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create("Alice", "", "1234", "otter")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.ClearPin(created.ID); err != nil {
		t.Fatalf("ClearPin: %v", err)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PinHash != "" || got.SecurityWord != "" {
		t.Fatal("expected pin and security word to be cleared")
	}
}

func TestPinSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	svc, err := profiles.NewService(dir)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	created, err := svc.Create("Alice", "", "1234", "otter")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	reopened, err := profiles.NewService(dir)
	if err != nil {
		t.Fatalf("NewService reopen: %v", err)
	}
	if err := reopened.VerifyPin(created.ID, "1234"); err != nil {
		t.Fatalf("expected pin to survive restart: %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create("Gone", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, profiles.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, profiles.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound on repeat delete, got %v", err)
	}
}

func TestSeasonalShownOncePerDay(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create("Alice", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if svc.SeasonalShownOn(created.ID, "halloween", "9-13") {
		t.Fatal("expected campaign not yet shown")
	}
	if err := svc.MarkSeasonalShown(created.ID, "halloween", "9-13"); err != nil {
		t.Fatalf("MarkSeasonalShown: %v", err)
	}
	if !svc.SeasonalShownOn(created.ID, "halloween", "9-13") {
		t.Fatal("expected campaign shown for the same day")
	}
	if svc.SeasonalShownOn(created.ID, "halloween", "9-14") {
		t.Fatal("expected a new day to reset the shown flag")
	}
}

func TestSaveUpserts(t *testing.T) {
	svc := newService(t)

	created, err := svc.Save(models.Profile{Name: "Alice", AvatarColor: "#3B82F6"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected id generated")
	}

	created.Name = "Alicia"
	updated, err := svc.Save(created)
	if err != nil {
		t.Fatalf("Save update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatal("expected upsert to keep id")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("expected upsert to keep creation time")
	}

	if len(svc.List()) != 1 {
		t.Fatal("expected a single profile after upsert")
	}
	got, _ := svc.Get(created.ID)
	if got.Name != "Alicia" {
		t.Fatalf("expected updated name, got %q", got.Name)
	}
}

func TestGetReturnsIndependentSeasonalMap(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create("Alice", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.MarkSeasonalShown(created.ID, "halloween", "10-31"); err != nil {
		t.Fatalf("MarkSeasonalShown: %v", err)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.SeasonalShown["halloween"] = "mutated"

	if !svc.SeasonalShownOn(created.ID, "halloween", "10-31") {
		t.Fatal("expected store untouched by mutating a returned profile")
	}

	// A later mark must not show through a previously returned copy.
	before, _ := svc.Get(created.ID)
	if err := svc.MarkSeasonalShown(created.ID, "christmas", "12-25"); err != nil {
		t.Fatalf("MarkSeasonalShown: %v", err)
	}
	if _, ok := before.SeasonalShown["christmas"]; ok {
		t.Fatal("expected earlier copy isolated from later writes")
	}
}

func TestConcurrentReadsAndSeasonalMarks(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create("Alice", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if err := svc.MarkSeasonalShown(created.ID, "halloween", fmt.Sprintf("10-%d", i%31+1)); err != nil {
				t.Errorf("MarkSeasonalShown: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			profile, err := svc.Get(created.ID)
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			// Marshal the copy outside the store lock, as bundle export does.
			if _, err := json.Marshal(profile); err != nil {
				t.Errorf("Marshal: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestListOrderedByCreation(t *testing.T) {
	svc := newService(t)

	first, _ := svc.Create("First", "", "", "")
	second, _ := svc.Create("Second", "", "", "")

	list := svc.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatal("expected profiles ordered by creation time")
	}
}
