package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
)

// ScoreRepository handles [models.Score] persistence.
//
// Deletes are hard deletes: removed scores are gone with no undo.
type ScoreRepository struct {
	db *sql.DB
}

// NewScoreRepository creates a new ScoreRepository with the given database connection
func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

const scoreColumns = "id, sequence, owner_id, title, composer, arranger, genre, genre2, difficulty, duration, notes, created_at, updated_at"

// Create inserts a new score with generated ID, sequence and timestamps,
// stamped with the given owner.
func (r *ScoreRepository) Create(ctx context.Context, score models.Score, ownerID string) (models.Score, error) {
	if err := score.Validate(); err != nil {
		return models.Score{}, fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "scores")
	if err != nil {
		return models.Score{}, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	score.ID = shared.GenerateID()
	score.Sequence = sequence
	score.OwnerID = ownerID
	score.CreatedAt = now
	score.UpdatedAt = now

	query := `
		INSERT INTO scores (` + scoreColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		score.ID,
		score.Sequence,
		score.OwnerID,
		score.Title,
		score.Composer,
		score.Arranger,
		score.Genre,
		score.Genre2,
		score.Difficulty,
		score.Duration,
		score.Notes,
		score.CreatedAt,
		score.UpdatedAt,
	)
	if err != nil {
		return models.Score{}, fmt.Errorf("failed to insert score: %w", err)
	}

	return score, nil
}

// Get retrieves a score by ID.
func (r *ScoreRepository) Get(ctx context.Context, id string) (models.Score, error) {
	query := `SELECT ` + scoreColumns + ` FROM scores WHERE id = ?`

	score, err := scanScore(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return models.Score{}, fmt.Errorf("%w: %s", shared.ErrScoreNotFound, id)
	}
	if err != nil {
		return models.Score{}, fmt.Errorf("failed to scan score: %w", err)
	}

	return score, nil
}

// ListByOwner retrieves all scores for an owner, newest first.
func (r *ScoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Score, error) {
	query := `
		SELECT ` + scoreColumns + `
		FROM scores
		WHERE owner_id = ?
		ORDER BY created_at DESC, sequence DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return scores, nil
}

// Update replaces every user-editable field of an existing score and
// refreshes its updated_at timestamp. Owner and creation time never change.
func (r *ScoreRepository) Update(ctx context.Context, id string, score models.Score) (models.Score, error) {
	if err := score.Validate(); err != nil {
		return models.Score{}, fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()

	query := `
		UPDATE scores
		SET title = ?, composer = ?, arranger = ?, genre = ?, genre2 = ?, difficulty = ?, duration = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		score.Title,
		score.Composer,
		score.Arranger,
		score.Genre,
		score.Genre2,
		score.Difficulty,
		score.Duration,
		score.Notes,
		now,
		id,
	)
	if err != nil {
		return models.Score{}, fmt.Errorf("failed to update score: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return models.Score{}, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return models.Score{}, fmt.Errorf("%w: %s", shared.ErrScoreNotFound, id)
	}

	return r.Get(ctx, id)
}

// Delete removes a score by ID.
func (r *ScoreRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM scores WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrScoreNotFound, id)
	}

	return nil
}

// scanner covers both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanScore(row scanner) (models.Score, error) {
	var s models.Score
	err := row.Scan(
		&s.ID,
		&s.Sequence,
		&s.OwnerID,
		&s.Title,
		&s.Composer,
		&s.Arranger,
		&s.Genre,
		&s.Genre2,
		&s.Difficulty,
		&s.Duration,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}
