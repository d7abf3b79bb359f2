package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
)

// RemoteStore implements [ScoreStore] against the hosted JSON document store.
//
// Every request carries the configured bearer token. Transport and backend
// failures surface as [shared.ErrStoreUnavailable]; a 404 on a score
// operation surfaces as [shared.ErrScoreNotFound].
type RemoteStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRemoteStore creates a remote store client for the given base URL.
func NewRemoteStore(baseURL, apiKey string, client *http.Client) *RemoteStore {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &RemoteStore{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
	}
}

// do issues a request with auth headers and decodes the JSON response body
// into out (when out is non-nil and the response has a body).
func (r *RemoteStore) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrStoreUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", shared.ErrScoreNotFound, method, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrStoreUnavailable, resp.StatusCode)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: invalid response body: %v", shared.ErrStoreUnavailable, err)
		}
	}

	return nil
}

// Create stores a new score document tagged with the owner.
func (r *RemoteStore) Create(ctx context.Context, score models.Score, ownerID string) (models.Score, error) {
	if err := score.Validate(); err != nil {
		return models.Score{}, fmt.Errorf("validation failed: %w", err)
	}

	score.OwnerID = ownerID

	var created models.Score
	if err := r.do(ctx, http.MethodPost, "/api/scores", score, &created); err != nil {
		return models.Score{}, err
	}
	return created, nil
}

// ListByOwner retrieves all scores for an owner, ordered by creation time
// descending.
func (r *RemoteStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Score, error) {
	path := "/api/scores?owner_id=" + url.QueryEscape(ownerID)

	var scores []models.Score
	if err := r.do(ctx, http.MethodGet, path, nil, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// Get retrieves a single score by ID.
func (r *RemoteStore) Get(ctx context.Context, id string) (models.Score, error) {
	var score models.Score
	if err := r.do(ctx, http.MethodGet, "/api/scores/"+url.PathEscape(id), nil, &score); err != nil {
		return models.Score{}, err
	}
	return score, nil
}

// Update replaces a score document's fields.
func (r *RemoteStore) Update(ctx context.Context, id string, score models.Score) (models.Score, error) {
	if err := score.Validate(); err != nil {
		return models.Score{}, fmt.Errorf("validation failed: %w", err)
	}

	var updated models.Score
	if err := r.do(ctx, http.MethodPut, "/api/scores/"+url.PathEscape(id), score, &updated); err != nil {
		return models.Score{}, err
	}
	return updated, nil
}

// Delete removes a score document.
func (r *RemoteStore) Delete(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, "/api/scores/"+url.PathEscape(id), nil, nil)
}

// GetGenres retrieves the shared genre list.
func (r *RemoteStore) GetGenres(ctx context.Context) ([]string, error) {
	var payload struct {
		List []string `json:"list"`
	}
	if err := r.do(ctx, http.MethodGet, "/api/genres", nil, &payload); err != nil {
		return nil, err
	}
	if payload.List == nil {
		return models.DefaultGenres(), nil
	}
	return payload.List, nil
}

// AddGenre appends a new name to the shared genre list. A case-insensitive
// duplicate comes back as a failed [GenreResult], not an error.
func (r *RemoteStore) AddGenre(ctx context.Context, name string) (GenreResult, error) {
	body := map[string]string{"name": name}

	var result GenreResult
	if err := r.do(ctx, http.MethodPost, "/api/genres", body, &result); err != nil {
		return GenreResult{}, err
	}
	return result, nil
}
