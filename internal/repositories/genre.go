package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
	"github.com/desertthunder/scorelib/internal/store"
)

// casAttempts caps the compare-and-swap retry loop for genre list updates.
const casAttempts = 3

// GenreRepository manages the shared genre list, stored as a single
// versioned JSON document in the genre_lists table.
//
// Writers read the current version, compute the new list, and update with a
// WHERE version = ? guard; a lost race retries with fresh state instead of
// clobbering a concurrent editor's write.
type GenreRepository struct {
	db *sql.DB
}

// NewGenreRepository creates a new GenreRepository with the given database connection
func NewGenreRepository(db *sql.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// List returns the shared genre list, seeding it with the defaults on first
// access.
func (r *GenreRepository) List(ctx context.Context) ([]string, error) {
	genres, _, err := r.load(ctx)
	return genres, err
}

// Add appends a case-insensitively-new name to the list. A duplicate name is
// a graceful failure, not an error.
func (r *GenreRepository) Add(ctx context.Context, name string) (store.GenreResult, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		genres, version, err := r.load(ctx)
		if err != nil {
			return store.GenreResult{}, err
		}

		if models.ContainsFold(genres, name) {
			return store.GenreResult{Success: false, Message: "Genre already exists"}, nil
		}

		updated := append(append([]string{}, genres...), name)
		sort.Strings(updated)

		swapped, err := r.swap(ctx, updated, version)
		if err != nil {
			return store.GenreResult{}, err
		}
		if swapped {
			return store.GenreResult{Success: true, Genres: updated}, nil
		}
	}

	return store.GenreResult{}, shared.ErrGenreConflict
}

// Replace overwrites the list with merged content, retrying on version
// conflicts. Used by the legacy genre migration.
func (r *GenreRepository) Replace(ctx context.Context, merge func(current []string) []string) ([]string, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		genres, version, err := r.load(ctx)
		if err != nil {
			return nil, err
		}

		updated := merge(genres)

		swapped, err := r.swap(ctx, updated, version)
		if err != nil {
			return nil, err
		}
		if swapped {
			return updated, nil
		}
	}

	return nil, shared.ErrGenreConflict
}

// load reads the genre document, inserting the default seed when the table is
// empty.
func (r *GenreRepository) load(ctx context.Context) ([]string, int, error) {
	var (
		version int
		raw     string
	)

	err := r.db.QueryRowContext(ctx, "SELECT version, list FROM genre_lists WHERE id = 1").Scan(&version, &raw)
	if err == sql.ErrNoRows {
		return r.seed(ctx)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query genre list: %w", err)
	}

	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil, 0, fmt.Errorf("corrupt genre list document: %w", err)
	}

	return genres, version, nil
}

// seed writes the default genre list. INSERT OR IGNORE tolerates a concurrent
// seeder; the follow-up read returns whichever seed won.
func (r *GenreRepository) seed(ctx context.Context) ([]string, int, error) {
	defaults := models.DefaultGenres()
	sort.Strings(defaults)
	raw, err := json.Marshal(defaults)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal default genres: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO genre_lists (id, version, list, updated_at) VALUES (1, 0, ?, ?)",
		string(raw), time.Now(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to seed genre list: %w", err)
	}

	return r.load(ctx)
}

// swap writes the new list guarded by the expected version. Returns false
// when the version moved underneath us.
func (r *GenreRepository) swap(ctx context.Context, genres []string, version int) (bool, error) {
	raw, err := json.Marshal(genres)
	if err != nil {
		return false, fmt.Errorf("failed to marshal genre list: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE genre_lists SET list = ?, version = version + 1, updated_at = ? WHERE id = 1 AND version = ?",
		string(raw), time.Now(), version,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update genre list: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}
