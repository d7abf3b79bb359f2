// package store defines the record store contract the catalog is built
// against, plus the client for the hosted document store backend.
//
// Persistence is delegated entirely to a store implementation: the catalog
// engines never talk to a database directly. Two implementations exist: the
// SQLite-backed store in internal/repositories and the remote HTTP client in
// this package.
package store

import (
	"context"

	"github.com/desertthunder/scorelib/internal/models"
)

// GenreResult is the outcome of an AddGenre call. Adding a name that already
// exists case-insensitively is a graceful failure, not an error.
type GenreResult struct {
	Success bool     `json:"success"`
	Genres  []string `json:"genres,omitempty"`
	Message string   `json:"message,omitempty"`
}

// ScoreStore is the durable keyed storage for score records and the shared
// genre list.
//
// Create assigns the ID and timestamps and stamps the owner; ListByOwner
// returns records ordered by creation time descending. Delete is a hard
// delete with no undo. GetGenres lazily seeds the shared list with
// [models.DefaultGenres] on first access.
type ScoreStore interface {
	Create(ctx context.Context, score models.Score, ownerID string) (models.Score, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Score, error)
	Get(ctx context.Context, id string) (models.Score, error)
	Update(ctx context.Context, id string, score models.Score) (models.Score, error)
	Delete(ctx context.Context, id string) error
	GetGenres(ctx context.Context) ([]string, error)
	AddGenre(ctx context.Context, name string) (GenreResult, error)
}
