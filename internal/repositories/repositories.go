// package repositories provides the SQLite persistence layer for the catalog.
//
// ScoreRepository and GenreRepository handle table access; [Store] composes
// them into the store.ScoreStore contract the rest of the application
// consumes.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/store"
)

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers provide human-readable ordering for entities. They are NOT
// exposed in CLI output but used internally for sorting and debugging.
func NextSequence(db *sql.DB, table string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequenceTable := table + "_sequence"

	_, err = tx.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}

// Store combines the score and genre repositories into a single
// [store.ScoreStore] implementation backed by one SQLite database.
type Store struct {
	scores *ScoreRepository
	genres *GenreRepository
}

// NewStore creates a Store over the given database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		scores: NewScoreRepository(db),
		genres: NewGenreRepository(db),
	}
}

func (s *Store) Create(ctx context.Context, score models.Score, ownerID string) (models.Score, error) {
	return s.scores.Create(ctx, score, ownerID)
}

func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.Score, error) {
	return s.scores.ListByOwner(ctx, ownerID)
}

func (s *Store) Get(ctx context.Context, id string) (models.Score, error) {
	return s.scores.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, score models.Score) (models.Score, error) {
	return s.scores.Update(ctx, id, score)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.scores.Delete(ctx, id)
}

func (s *Store) GetGenres(ctx context.Context) ([]string, error) {
	return s.genres.List(ctx)
}

func (s *Store) AddGenre(ctx context.Context, name string) (store.GenreResult, error) {
	return s.genres.Add(ctx, name)
}
