package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func terms(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Term
	}
	return out
}

func TestRecordAndRecent(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	for i, term := range []string{"redux", "react", "golang"} {
		if err := db.recordAt(term, now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("record %s: %v", term, err)
		}
	}

	got, err := db.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	want := []string{"golang", "react", "redux"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Term != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], got[i].Term)
		}
	}
}

func TestRecordBumpsCount(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	db.recordAt("redux", now.Add(-time.Hour))
	db.recordAt("react", now.Add(-time.Minute))
	db.recordAt("redux", now)

	got, err := db.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Term != "redux" || got[0].Count != 2 {
		t.Errorf("expected redux used twice first, got %+v", got[0])
	}
}

func TestRecordIgnoresBlank(t *testing.T) {
	db := testDB(t)
	if err := db.Record("   "); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := db.Record(""); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, _ := db.Recent(10)
	if len(got) != 0 {
		t.Errorf("expected no entries, got %v", terms(got))
	}
}

func TestRecordTrimsTerm(t *testing.T) {
	db := testDB(t)
	db.Record("  redux ")
	db.Record("redux")
	got, _ := db.Recent(10)
	if len(got) != 1 || got[0].Count != 2 {
		t.Errorf("expected a single trimmed entry used twice, got %+v", got)
	}
}

func TestRecentLimit(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	for i, term := range []string{"a", "b", "c", "d"} {
		db.recordAt(term, now.Add(time.Duration(i)*time.Second))
	}
	got, err := db.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 || got[0].Term != "d" || got[1].Term != "c" {
		t.Errorf("expected [d c], got %v", terms(got))
	}
}

func TestPrune(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	db.recordAt("old", now.Add(-48*time.Hour))
	db.recordAt("new", now.Add(-time.Hour))

	deleted, err := db.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 pruned, got %d", deleted)
	}
	got, _ := db.Recent(10)
	if len(got) != 1 || got[0].Term != "new" {
		t.Errorf("expected only new to remain, got %v", terms(got))
	}
}

func TestPruneNothingToDelete(t *testing.T) {
	db := testDB(t)
	db.Record("redux")
	deleted, err := db.Prune(365 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 pruned, got %d", deleted)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	db.Record("redux")
	db.Record("react")

	count, size, err := db.Stats(dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if size == 0 {
		t.Error("expected non-zero db size")
	}
}

func TestOpenCreatesDir(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "deep", "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("opening db in nested dir: %v", err)
	}
	db.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
}
