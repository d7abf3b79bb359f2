package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/scorelib/internal/csv"
	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
	tu "github.com/desertthunder/scorelib/internal/testing"
	"github.com/google/go-cmp/cmp"
)

func doc(rows ...string) string {
	return csv.Header + "\n" + strings.Join(rows, "\n") + "\n"
}

func fixedResolver(res Resolution) Resolver {
	return func([]string, int) Resolution { return res }
}

// opts with a high rate limit keep the tests fast.
var testOpts = ImportOpts{RateLimit: 10000}

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("imports valid rows", func(t *testing.T) {
		store := tu.NewMockStore()
		engine := NewImportEngine(store, "owner1")

		outcome, err := engine.Import(ctx, nil, doc(
			`"Etude Op. 10","Chopin","","Classical","","Advanced","2:30",""`,
			`"Nocturne","Chopin"`,
		), nil, nil, testOpts)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		if outcome.Total != 2 || outcome.Valid != 2 || outcome.Imported != 2 {
			t.Errorf("outcome = %+v", outcome)
		}
		if len(store.Scores) != 2 {
			t.Fatalf("store has %d scores, want 2", len(store.Scores))
		}
		if store.Scores[0].OwnerID != "owner1" {
			t.Errorf("OwnerID = %q, want owner1", store.Scores[0].OwnerID)
		}
		if store.Scores[0].Genre != "Classical" || store.Scores[0].Difficulty != "Advanced" {
			t.Errorf("first score = %+v", store.Scores[0])
		}
	})

	t.Run("rows missing title or composer are invalid", func(t *testing.T) {
		store := tu.NewMockStore()
		engine := NewImportEngine(store, "owner1")

		outcome, err := engine.Import(ctx, nil, doc(
			`"","Chopin"`,
			`"Nocturne",""`,
			`"Nocturne"`,
			`"Etude","Chopin"`,
		), nil, nil, testOpts)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		if outcome.Total != 4 || outcome.Invalid != 3 || outcome.Valid != 1 || outcome.Imported != 1 {
			t.Errorf("outcome = %+v", outcome)
		}
	})

	t.Run("empty file errors", func(t *testing.T) {
		engine := NewImportEngine(tu.NewMockStore(), "owner1")

		if _, err := engine.Import(ctx, nil, csv.Header+"\n", nil, nil, testOpts); !errors.Is(err, shared.ErrEmptyFile) {
			t.Errorf("Import() error = %v, want ErrEmptyFile", err)
		}
	})

	t.Run("nil store errors", func(t *testing.T) {
		engine := NewImportEngine(nil, "owner1")

		if _, err := engine.Import(ctx, nil, doc(`"Etude","Chopin"`), nil, nil, testOpts); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("Import() error = %v, want ErrStoreUnavailable", err)
		}
	})
}

func TestImportDuplicates(t *testing.T) {
	ctx := context.Background()
	existing := []models.Score{{ID: "1", Title: "Etude", Composer: "Chopin", OwnerID: "owner1"}}

	t.Run("skip imports only new rows", func(t *testing.T) {
		store := tu.NewMockStore(existing...)
		engine := NewImportEngine(store, "owner1")

		outcome, err := engine.Import(ctx, nil, doc(
			`"etude ","Chopin"`,
			`"Nocturne","Chopin"`,
		), existing, fixedResolver(SkipDuplicates), testOpts)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		want := &ImportOutcome{
			Total: 2, Valid: 2, Duplicates: 1, Skipped: 1, Imported: 1,
			DuplicateTitles: []string{"etude"},
		}
		if diff := cmp.Diff(want, outcome); diff != "" {
			t.Errorf("outcome mismatch (-want +got):\n%s", diff)
		}
		if len(store.Scores) != 2 {
			t.Errorf("store has %d scores, want 2", len(store.Scores))
		}
	})

	t.Run("import all keeps duplicates", func(t *testing.T) {
		store := tu.NewMockStore(existing...)
		engine := NewImportEngine(store, "owner1")

		outcome, err := engine.Import(ctx, nil, doc(
			`"Etude","Chopin"`,
			`"Nocturne","Chopin"`,
		), existing, fixedResolver(ImportAll), testOpts)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		if outcome.Duplicates != 1 || outcome.Skipped != 0 || outcome.Imported != 2 {
			t.Errorf("outcome = %+v", outcome)
		}
		if len(store.Scores) != 3 {
			t.Errorf("store has %d scores, want 3", len(store.Scores))
		}
	})

	t.Run("abort leaves the store untouched", func(t *testing.T) {
		store := tu.NewMockStore(existing...)
		engine := NewImportEngine(store, "owner1")

		outcome, err := engine.Import(ctx, nil, doc(
			`"Etude","Chopin"`,
			`"Nocturne","Chopin"`,
		), existing, fixedResolver(AbortImport), testOpts)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		if !outcome.Aborted || outcome.Imported != 0 {
			t.Errorf("outcome = %+v", outcome)
		}
		if len(store.Scores) != 1 {
			t.Errorf("store has %d scores, want 1", len(store.Scores))
		}
	})

	t.Run("duplicates with no resolver error", func(t *testing.T) {
		engine := NewImportEngine(tu.NewMockStore(existing...), "owner1")

		_, err := engine.Import(ctx, nil, doc(`"Etude","Chopin"`), existing, nil, testOpts)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("Import() error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("resolver receives capped titles and full count", func(t *testing.T) {
		var manyExisting []models.Score
		rows := make([]string, 0, 7)
		for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
			manyExisting = append(manyExisting, models.Score{Title: title, Composer: "x", OwnerID: "owner1"})
			rows = append(rows, `"`+title+`","x"`)
		}
		engine := NewImportEngine(tu.NewMockStore(manyExisting...), "owner1")

		var gotTitles []string
		var gotCount int
		resolve := func(duplicates []string, count int) Resolution {
			gotTitles = duplicates
			gotCount = count
			return AbortImport
		}

		if _, err := engine.Import(ctx, nil, doc(rows...), manyExisting, resolve, testOpts); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if gotCount != 7 {
			t.Errorf("count = %d, want 7", gotCount)
		}
		if len(gotTitles) != maxDuplicateDisplay {
			t.Errorf("len(titles) = %d, want %d", len(gotTitles), maxDuplicateDisplay)
		}
	})

	t.Run("rows within the batch are not compared against each other", func(t *testing.T) {
		store := tu.NewMockStore()
		engine := NewImportEngine(store, "owner1")

		outcome, err := engine.Import(ctx, nil, doc(
			`"Nocturne","Chopin"`,
			`"Nocturne","Field"`,
		), nil, nil, testOpts)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		if outcome.Duplicates != 0 || outcome.Imported != 2 {
			t.Errorf("outcome = %+v", outcome)
		}
	})
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("per-row failures are counted, not fatal", func(t *testing.T) {
		store := tu.NewMockStore()
		store.FailTitles = map[string]error{"Nocturne": errors.New("disk full")}
		engine := NewImportEngine(store, "owner1")

		outcome, err := engine.Import(ctx, nil, doc(
			`"Etude","Chopin"`,
			`"Nocturne","Chopin"`,
			`"Waltz","Chopin"`,
		), nil, nil, testOpts)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		if outcome.Errors != 1 || outcome.Imported != 2 {
			t.Errorf("outcome = %+v", outcome)
		}
	})

	t.Run("cancelled context stops the create loop", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		engine := NewImportEngine(tu.NewMockStore(), "owner1")
		outcome, err := engine.Import(cancelled, nil, doc(`"Etude","Chopin"`), nil, nil, testOpts)
		if err == nil {
			t.Fatal("Import() expected error from cancelled context")
		}
		if outcome == nil || outcome.Imported != 0 {
			t.Errorf("outcome = %+v", outcome)
		}
	})
}

func TestImportProgress(t *testing.T) {
	store := tu.NewMockStore()
	engine := NewImportEngine(store, "owner1")

	progress := make(chan ProgressUpdate, 100)
	_, err := engine.Import(context.Background(), progress, doc(
		`"Etude","Chopin"`,
		`"Nocturne","Chopin"`,
	), nil, nil, testOpts)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	close(progress)

	var phases []Phase
	for update := range progress {
		phases = append(phases, update.Phase)
	}
	if len(phases) == 0 {
		t.Fatal("expected progress updates")
	}

	sawCreate := false
	for _, p := range phases {
		if p == CreateScores {
			sawCreate = true
		}
	}
	if !sawCreate {
		t.Errorf("phases = %v, want a CreateScores update", phases)
	}
}

func TestImportOutcomeSummary(t *testing.T) {
	t.Run("reports counts", func(t *testing.T) {
		outcome := &ImportOutcome{Total: 5, Imported: 3, Invalid: 1, Skipped: 1, Errors: 0}
		summary := outcome.Summary()

		for _, want := range []string{"Import complete!", "Total rows in file: 5", "Successfully imported: 3", "Duplicates skipped: 1"} {
			if !strings.Contains(summary, want) {
				t.Errorf("Summary() missing %q:\n%s", want, summary)
			}
		}
	})

	t.Run("aborted run", func(t *testing.T) {
		outcome := &ImportOutcome{Total: 2, Aborted: true}
		if !strings.Contains(outcome.Summary(), "Import cancelled.") {
			t.Errorf("Summary() = %q", outcome.Summary())
		}
	})
}
