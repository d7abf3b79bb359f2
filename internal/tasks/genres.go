package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/store"
)

// MigrationResult summarizes a legacy genre migration.
type MigrationResult struct {
	Migrated int      `json:"migrated"`
	Genres   []string `json:"genres,omitempty"`
}

// MigrateLegacyGenres moves custom genre names from the legacy per-device
// JSON file into the shared genre list, then removes the file.
//
// Runs once at session start. A missing file is a successful no-op; names
// already present in the shared list (ignoring case) are not re-added and do
// not count as migrated.
func MigrateLegacyGenres(ctx context.Context, progress chan<- ProgressUpdate, st store.ScoreStore, path string) (*MigrationResult, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &MigrationResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy genre file: %w", err)
	}

	var custom []string
	if err := json.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("corrupt legacy genre file %s: %w", path, err)
	}

	current, err := st.GetGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shared genre list: %w", err)
	}

	_, added := models.MergeGenres(current, custom)

	result := &MigrationResult{}
	for i, name := range added {
		sendProgress(progress, migrateGenresUpdate(i+1, len(added)))

		res, err := st.AddGenre(ctx, name)
		if err != nil {
			return result, fmt.Errorf("failed to migrate genre %q: %w", name, err)
		}
		if res.Success {
			result.Migrated++
			result.Genres = res.Genres
		}
	}

	if result.Genres == nil {
		result.Genres = current
	}

	// The file is only removed once everything in it is in shared storage.
	if err := os.Remove(path); err != nil {
		return result, fmt.Errorf("migrated %d genre(s) but failed to remove legacy file: %w", result.Migrated, err)
	}

	return result, nil
}
