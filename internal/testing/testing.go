// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
	"github.com/desertthunder/scorelib/internal/store"
)

// MockStore is an in-memory test double for [store.ScoreStore].
//
// Created scores are appended in call order. Error injection: CreateErr fails
// every create, FailTitles fails creates for specific titles.
type MockStore struct {
	mu         sync.Mutex
	Scores     []models.Score
	Genres     []string
	CreateErr  error
	ListErr    error
	GenresErr  error
	FailTitles map[string]error
	nextSeq    int
}

// NewMockStore creates a MockStore pre-populated with the given scores.
func NewMockStore(scores ...models.Score) *MockStore {
	m := &MockStore{Genres: models.DefaultGenres()}
	m.Scores = append(m.Scores, scores...)
	m.nextSeq = len(scores)
	return m
}

func (m *MockStore) Create(ctx context.Context, score models.Score, ownerID string) (models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return models.Score{}, m.CreateErr
	}
	if err, ok := m.FailTitles[score.Title]; ok {
		return models.Score{}, err
	}
	if err := score.Validate(); err != nil {
		return models.Score{}, err
	}

	m.nextSeq++
	score.ID = fmt.Sprintf("mock-%d", m.nextSeq)
	score.Sequence = m.nextSeq
	score.OwnerID = ownerID
	m.Scores = append(m.Scores, score)
	return score, nil
}

func (m *MockStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	var scores []models.Score
	for _, s := range m.Scores {
		if s.OwnerID == ownerID || s.OwnerID == "" {
			scores = append(scores, s)
		}
	}
	return scores, nil
}

func (m *MockStore) Get(ctx context.Context, id string) (models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.Scores {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Score{}, fmt.Errorf("%w: %s", shared.ErrScoreNotFound, id)
}

func (m *MockStore) Update(ctx context.Context, id string, score models.Score) (models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.Scores {
		if s.ID == id {
			score.ID = s.ID
			score.OwnerID = s.OwnerID
			score.CreatedAt = s.CreatedAt
			m.Scores[i] = score
			return score, nil
		}
	}
	return models.Score{}, fmt.Errorf("%w: %s", shared.ErrScoreNotFound, id)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.Scores {
		if s.ID == id {
			m.Scores = append(m.Scores[:i], m.Scores[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrScoreNotFound, id)
}

func (m *MockStore) GetGenres(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GenresErr != nil {
		return nil, m.GenresErr
	}
	return append([]string{}, m.Genres...), nil
}

func (m *MockStore) AddGenre(ctx context.Context, name string) (store.GenreResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GenresErr != nil {
		return store.GenreResult{}, m.GenresErr
	}
	if models.ContainsFold(m.Genres, name) {
		return store.GenreResult{Success: false, Message: "Genre already exists"}, nil
	}
	m.Genres = append(m.Genres, name)
	return store.GenreResult{Success: true, Genres: append([]string{}, m.Genres...)}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
