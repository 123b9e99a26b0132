package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"simplstream/models"
	"simplstream/services/metadata"
	"simplstream/services/profiles"
	"simplstream/services/ratings"
	"simplstream/services/watchlist"
)

type stubDetailMetadata struct {
	stubMetadata
	detail     models.TitleDetail
	detailErr  error
	similar    []models.CatalogItem
	similarErr error
}

func (s stubDetailMetadata) MovieDetails(ctx context.Context, tmdbID int64) (models.TitleDetail, error) {
	return s.detail, s.detailErr
}

func (s stubDetailMetadata) ShowDetails(ctx context.Context, tmdbID int64) (models.TitleDetail, error) {
	return s.detail, s.detailErr
}

func (s stubDetailMetadata) Similar(ctx context.Context, mediaType string, tmdbID int64) ([]models.CatalogItem, error) {
	return s.similar, s.similarErr
}

func newDetailFixture(t *testing.T, meta metadataService) (*DetailHandler, *profiles.Service, *watchlist.Service, *ratings.Service) {
	t.Helper()
	dir := t.TempDir()

	p, err := profiles.NewService(dir)
	if err != nil {
		t.Fatalf("profiles.NewService: %v", err)
	}
	w, err := watchlist.NewService(dir)
	if err != nil {
		t.Fatalf("watchlist.NewService: %v", err)
	}
	rt, err := ratings.NewService(dir)
	if err != nil {
		t.Fatalf("ratings.NewService: %v", err)
	}

	return NewDetailHandler(meta, rt, w), p, w, rt
}

func detailRequest(h *DetailHandler, mediaType, tmdbID, profileID string) *httptest.ResponseRecorder {
	target := "/api/titles/" + mediaType + "/" + tmdbID
	if profileID != "" {
		target += "?profile=" + profileID
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = mux.SetURLVars(req, map[string]string{"mediaType": mediaType, "tmdbId": tmdbID})
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	return rec
}

func TestDetailIncludesSimilarAndViewerState(t *testing.T) {
	meta := stubDetailMetadata{
		detail:  models.TitleDetail{TMDBID: 550, MediaType: "movie", Title: "Fight Club"},
		similar: []models.CatalogItem{{TMDBID: 807, MediaType: "movie", Title: "Se7en"}},
	}
	h, p, w, rt := newDetailFixture(t, meta)

	profile, err := p.Create("Alice", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w.Add(profile.ID, 550, "movie", "Fight Club", "")
	rt.Save(profile.ID, 550, "movie", 4, "Fight Club", "", nil)

	rec := detailRequest(h, "movie", "550", profile.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp detailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Title != "Fight Club" {
		t.Fatalf("unexpected title %q", resp.Title)
	}
	if len(resp.Similar) != 1 || resp.Similar[0].Title != "Se7en" {
		t.Fatalf("unexpected similar row %+v", resp.Similar)
	}
	if !resp.Watched || !resp.InWatchlist {
		t.Fatalf("expected viewer state set, got watched=%v inWatchlist=%v", resp.Watched, resp.InWatchlist)
	}
}

func TestDetailWithoutProfileOmitsViewerState(t *testing.T) {
	meta := stubDetailMetadata{
		detail: models.TitleDetail{TMDBID: 550, MediaType: "movie", Title: "Fight Club"},
	}
	h, _, _, _ := newDetailFixture(t, meta)

	rec := detailRequest(h, "movie", "550", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp detailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Watched || resp.InWatchlist {
		t.Fatal("expected viewer state unset without a profile")
	}
}

func TestDetailSimilarFailureDegrades(t *testing.T) {
	meta := stubDetailMetadata{
		detail:     models.TitleDetail{TMDBID: 550, MediaType: "movie", Title: "Fight Club"},
		similarErr: errors.New("provider down"),
	}
	h, _, _, _ := newDetailFixture(t, meta)

	rec := detailRequest(h, "movie", "550", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite similar failure, got %d", rec.Code)
	}

	var resp detailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Similar) != 0 {
		t.Fatalf("expected empty similar row, got %d items", len(resp.Similar))
	}
}

func TestDetailProviderFailureIsBadGateway(t *testing.T) {
	meta := stubDetailMetadata{detailErr: errors.New("provider down")}
	h, _, _, _ := newDetailFixture(t, meta)

	rec := detailRequest(h, "movie", "550", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestDetailNotFound(t *testing.T) {
	meta := stubDetailMetadata{detailErr: metadata.ErrNotFound}
	h, _, _, _ := newDetailFixture(t, meta)

	rec := detailRequest(h, "movie", "550", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDetailRejectsBadMediaType(t *testing.T) {
	h, _, _, _ := newDetailFixture(t, stubDetailMetadata{})

	rec := detailRequest(h, "live", "550", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
