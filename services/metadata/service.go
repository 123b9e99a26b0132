package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"simplstream/models"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p"
	posterSize     = "w500"
	backdropSize   = "w1280"
	profileSize    = "w185"
	placeholderURL = "/static/poster-placeholder.svg"

	requestTimeout = 15 * time.Second
	minInterval    = 20 * time.Millisecond
	maxAttempts    = 3
	backoffBase    = 300 * time.Millisecond
)

var (
	ErrAPIKeyRequired = errors.New("tmdb api key is required")
	ErrNotFound       = errors.New("title not found")
)

// Service is a TMDB metadata client. Requests are throttled and retried
// on transient failures.
type Service struct {
	apiKey   string
	language string
	baseURL  string
	client   *http.Client

	throttleMu sync.Mutex
	lastCall   time.Time
}

// NewService creates a TMDB client.
func NewService(apiKey, language string) (*Service, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if language = strings.TrimSpace(language); language == "" {
		language = "en-US"
	}

	return &Service{
		apiKey:   apiKey,
		language: language,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: requestTimeout},
	}, nil
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (s *Service) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(base, "/")
}

func (s *Service) throttle() {
	s.throttleMu.Lock()
	defer s.throttleMu.Unlock()

	if wait := minInterval - time.Since(s.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	s.lastCall = time.Now()
}

// get performs a throttled TMDB request with bounded retries on 429 and
// server errors.
func (s *Service) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", s.apiKey)
	params.Set("language", s.language)

	endpoint := s.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := backoffBase * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		s.throttle()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				lastErr = readErr
				continue
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode tmdb response: %w", err)
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return ErrNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("tmdb returned status %d", resp.StatusCode)
			continue
		default:
			return fmt.Errorf("tmdb returned status %d", resp.StatusCode)
		}
	}

	return fmt.Errorf("tmdb request failed after %d attempts: %w", maxAttempts, lastErr)
}

// ImageURL builds a full image URL for a TMDB path. Empty paths map to
// the bundled placeholder.
func ImageURL(path, size string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return placeholderURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return imageBaseURL + "/" + size + path
}

// PosterURL builds a poster image URL.
func PosterURL(path string) string {
	return ImageURL(path, posterSize)
}

// BackdropURL builds a backdrop image URL.
func BackdropURL(path string) string {
	return ImageURL(path, backdropSize)
}

// Trending returns the day's trending titles across movies and shows.
func (s *Service) Trending(ctx context.Context) ([]models.CatalogItem, error) {
	var payload listResponse
	if err := s.get(ctx, "/trending/all/day", nil, &payload); err != nil {
		return nil, err
	}
	return payload.catalogItems(""), nil
}

// PopularMovies returns the current popular movies.
func (s *Service) PopularMovies(ctx context.Context) ([]models.CatalogItem, error) {
	var payload listResponse
	if err := s.get(ctx, "/movie/popular", nil, &payload); err != nil {
		return nil, err
	}
	return payload.catalogItems("movie"), nil
}

// PopularShows returns the current popular TV shows.
func (s *Service) PopularShows(ctx context.Context) ([]models.CatalogItem, error) {
	var payload listResponse
	if err := s.get(ctx, "/tv/popular", nil, &payload); err != nil {
		return nil, err
	}
	return payload.catalogItems("tv"), nil
}

// MovieDetails returns full metadata for a movie, including videos and
// cast in a single request.
func (s *Service) MovieDetails(ctx context.Context, tmdbID int64) (models.TitleDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "videos,credits")

	var payload detailResponse
	if err := s.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), params, &payload); err != nil {
		return models.TitleDetail{}, err
	}
	return payload.titleDetail("movie"), nil
}

// ShowDetails returns full metadata for a TV show.
func (s *Service) ShowDetails(ctx context.Context, tmdbID int64) (models.TitleDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "videos,credits")

	var payload detailResponse
	if err := s.get(ctx, fmt.Sprintf("/tv/%d", tmdbID), params, &payload); err != nil {
		return models.TitleDetail{}, err
	}
	return payload.titleDetail("tv"), nil
}

// Similar returns titles similar to the given one, capped at ten.
func (s *Service) Similar(ctx context.Context, mediaType string, tmdbID int64) ([]models.CatalogItem, error) {
	mediaType = strings.TrimSpace(mediaType)
	if mediaType != "movie" && mediaType != "tv" {
		return nil, fmt.Errorf("unsupported media type %q", mediaType)
	}

	var payload listResponse
	if err := s.get(ctx, fmt.Sprintf("/%s/%d/similar", mediaType, tmdbID), nil, &payload); err != nil {
		return nil, err
	}

	items := payload.catalogItems(mediaType)
	if len(items) > 10 {
		items = items[:10]
	}
	return items, nil
}

// Season returns a show's season with its full episode list.
func (s *Service) Season(ctx context.Context, tmdbID int64, seasonNumber int) (models.SeasonDetail, error) {
	var payload seasonResponse
	if err := s.get(ctx, fmt.Sprintf("/tv/%d/season/%d", tmdbID, seasonNumber), nil, &payload); err != nil {
		return models.SeasonDetail{}, err
	}
	return payload.seasonDetail(), nil
}
