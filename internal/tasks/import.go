package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/scorelib/internal/csv"
	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
	"github.com/desertthunder/scorelib/internal/store"
	"golang.org/x/time/rate"
)

// maxDuplicateDisplay caps how many duplicate titles an outcome carries for
// prompt display.
const maxDuplicateDisplay = 5

// Resolution is the caller's decision on how to handle duplicate rows.
type Resolution int

const (
	// SkipDuplicates imports only the non-duplicate valid rows.
	SkipDuplicates Resolution = iota
	// ImportAll imports every valid row, duplicates included.
	ImportAll
	// AbortImport cancels the whole import with zero rows created.
	AbortImport
)

// Resolver supplies the duplicate decision. It receives the duplicate titles
// (capped for display) and the full duplicate count, and blocks until the
// caller answers.
type Resolver func(duplicates []string, count int) Resolution

// ImportOutcome summarizes one import run.
type ImportOutcome struct {
	Total           int        `json:"total"`      // data rows in the file
	Valid           int        `json:"valid"`      // rows with a title and composer
	Invalid         int        `json:"invalid"`    // rows missing title/composer, skipped
	Duplicates      int        `json:"duplicates"` // valid rows whose title already exists
	Skipped         int        `json:"skipped"`    // duplicates skipped (0 unless skipping)
	Imported        int        `json:"imported"`   // rows created in the store
	Errors          int        `json:"errors"`     // per-row create failures
	Aborted         bool       `json:"aborted"`
	DuplicateTitles []string   `json:"duplicate_titles,omitempty"`
	Resolution      Resolution `json:"-"`
}

// ImportOpts configures an import run.
type ImportOpts struct {
	// RateLimit caps create requests per second. Zero or negative means the
	// default of 25.
	RateLimit float64
}

// ImportEngine reconciles parsed CSV rows against the record store.
type ImportEngine struct {
	store store.ScoreStore
	owner string
}

// NewImportEngine creates an ImportEngine writing to the given store on
// behalf of the given owner.
func NewImportEngine(st store.ScoreStore, ownerID string) *ImportEngine {
	return &ImportEngine{store: st, owner: ownerID}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Import runs the reconciliation algorithm over a raw CSV document.
//
// Duplicate detection compares each row's trimmed, lowercased title against
// the existing record set as it stood before the import began; rows within
// the same batch are never compared against each other. Creation is
// sequential, best-effort and non-transactional: per-row failures are counted
// and the loop continues. The caller reloads the store afterwards.
func (e *ImportEngine) Import(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	doc string,
	existing []models.Score,
	resolve Resolver,
	opts ImportOpts,
) (*ImportOutcome, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: record store not initialized", shared.ErrStoreUnavailable)
	}

	dataLines, err := csv.Split(doc)
	if err != nil {
		return nil, err
	}

	outcome := &ImportOutcome{Total: len(dataLines)}

	// Snapshot of pre-import titles; the duplicate oracle for the whole run.
	existingTitles := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		existingTitles[shared.NormalizeTitle(s.Title)] = struct{}{}
	}

	sendProgress(progress, parseRowsUpdate(0, len(dataLines)))

	type validRow struct {
		score     models.Score
		duplicate bool
	}

	var rows []validRow
	for i, line := range dataLines {
		fields := csv.ParseLine(line)
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			outcome.Invalid++
			continue
		}

		row := validRow{score: csv.RowScore(fields)}
		if _, ok := existingTitles[shared.NormalizeTitle(row.score.Title)]; ok {
			row.duplicate = true
			outcome.Duplicates++
			if len(outcome.DuplicateTitles) < maxDuplicateDisplay {
				outcome.DuplicateTitles = append(outcome.DuplicateTitles, row.score.Title)
			}
		}
		rows = append(rows, row)

		sendProgress(progress, parseRowsUpdate(i+1, len(dataLines)))
	}
	outcome.Valid = len(rows)

	resolution := ImportAll
	if outcome.Duplicates > 0 {
		if resolve == nil {
			return nil, fmt.Errorf("%w: %d duplicate titles found and no resolver provided", shared.ErrInvalidInput, outcome.Duplicates)
		}
		sendProgress(progress, resolveDuplicatesUpdate(outcome.Duplicates))
		resolution = resolve(outcome.DuplicateTitles, outcome.Duplicates)
	}
	outcome.Resolution = resolution

	if resolution == AbortImport {
		outcome.Aborted = true
		return outcome, nil
	}

	limit := opts.RateLimit
	if limit <= 0 {
		limit = 25.0
	}
	limiter := rate.NewLimiter(rate.Limit(limit), 1)

	for i, row := range rows {
		if resolution == SkipDuplicates && row.duplicate {
			outcome.Skipped++
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return outcome, fmt.Errorf("import interrupted: %w", err)
		}

		sendProgress(progress, createScoreUpdate(i+1, len(rows), row.score.Title))

		if _, err := e.store.Create(ctx, row.score, e.owner); err != nil {
			outcome.Errors++
			sendProgress(progress, createFailedUpdate(i+1, len(rows), row.score.Title, err))
			continue
		}
		outcome.Imported++
	}

	return outcome, nil
}

// Summary renders the outcome as the multi-line report shown after an import.
func (o *ImportOutcome) Summary() string {
	var sb strings.Builder

	if o.Aborted {
		sb.WriteString("Import cancelled.\n")
	} else {
		sb.WriteString("Import complete!\n")
	}
	fmt.Fprintf(&sb, "  Total rows in file: %d\n", o.Total)
	fmt.Fprintf(&sb, "  Successfully imported: %d\n", o.Imported)
	if o.Invalid > 0 {
		fmt.Fprintf(&sb, "  Invalid rows (missing title/composer): %d\n", o.Invalid)
	}
	if o.Skipped > 0 {
		fmt.Fprintf(&sb, "  Duplicates skipped: %d\n", o.Skipped)
	} else if o.Duplicates > 0 {
		fmt.Fprintf(&sb, "  Duplicates found: %d\n", o.Duplicates)
	}
	if o.Errors > 0 {
		fmt.Fprintf(&sb, "  Errors during import: %d\n", o.Errors)
	}

	return sb.String()
}
