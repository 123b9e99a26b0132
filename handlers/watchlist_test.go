package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"simplstream/handlers"
)

func TestWatchlistAddAndList(t *testing.T) {
	f := newFixture(t)
	h := handlers.NewWatchlistHandler(f.watchlist, f.profiles)

	profile, err := f.profiles.Create("Alice", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	body := bytes.NewBufferString(`{"tmdbId":550,"mediaType":"movie","title":"Fight Club","posterPath":"/p.jpg"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/x/watchlist", body)
	req = mux.SetURLVars(req, map[string]string{"id": profile.ID})
	rec := httptest.NewRecorder()

	h.Add(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/profiles/x/watchlist", nil)
	listReq = mux.SetURLVars(listReq, map[string]string{"id": profile.ID})
	listRec := httptest.NewRecorder()

	h.List(listRec, listReq)
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listRec.Code)
	}

	var resp struct {
		Items []struct {
			TMDBID int64  `json:"tmdbId"`
			Title  string `json:"title"`
		} `json:"items"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].TMDBID != 550 {
		t.Fatalf("unexpected items %+v", resp.Items)
	}
}

func TestWatchlistAddUnknownProfile(t *testing.T) {
	f := newFixture(t)
	h := handlers.NewWatchlistHandler(f.watchlist, f.profiles)

	body := bytes.NewBufferString(`{"tmdbId":550,"mediaType":"movie","title":"Fight Club"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/profiles/x/watchlist", body)
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	rec := httptest.NewRecorder()

	h.Add(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWatchlistRemove(t *testing.T) {
	f := newFixture(t)
	h := handlers.NewWatchlistHandler(f.watchlist, f.profiles)

	profile, err := f.profiles.Create("Alice", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.watchlist.Add(profile.ID, 550, "movie", "Fight Club", "")

	req := httptest.NewRequest(http.MethodDelete, "/api/profiles/x/watchlist/550", nil)
	req = mux.SetURLVars(req, map[string]string{"id": profile.ID, "tmdbId": "550"})
	rec := httptest.NewRecorder()

	h.Remove(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.watchlist.Contains(profile.ID, 550) {
		t.Fatal("expected item removed")
	}
}

func TestWatchlistContains(t *testing.T) {
	f := newFixture(t)
	h := handlers.NewWatchlistHandler(f.watchlist, f.profiles)

	profile, err := f.profiles.Create("Alice", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.watchlist.Add(profile.ID, 550, "movie", "Fight Club", "")

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/x/watchlist/550", nil)
	req = mux.SetURLVars(req, map[string]string{"id": profile.ID, "tmdbId": "550"})
	rec := httptest.NewRecorder()

	h.Contains(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		InWatchlist bool `json:"inWatchlist"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.InWatchlist {
		t.Fatal("expected item reported in watchlist")
	}
}

func TestWatchlistBadTMDBID(t *testing.T) {
	f := newFixture(t)
	h := handlers.NewWatchlistHandler(f.watchlist, f.profiles)

	req := httptest.NewRequest(http.MethodDelete, "/api/profiles/x/watchlist/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "p1", "tmdbId": "abc"})
	rec := httptest.NewRecorder()

	h.Remove(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
