package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordClear(Clear{LevelID: "lvl01", Ticks: 90, ItemsPlaced: 1}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	ok, err := store.IsCleared("lvl01")
	if err != nil || !ok {
		t.Errorf("IsCleared after reopen = %v, %v", ok, err)
	}
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("lvl01", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("lvl02", 500); err != nil {
		t.Fatal(err)
	}

	scores, err := store.TopScores("lvl01", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 200 || scores[1].Score != 100 {
		t.Errorf("TopScores = %+v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	high, err := store.HighScore("lvl02")
	if err != nil || high != 500 {
		t.Errorf("HighScore(lvl02) = %d, %v", high, err)
	}
	high, err = store.HighScore("missing")
	if err != nil || high != 0 {
		t.Errorf("HighScore(missing) = %d, %v", high, err)
	}
}

func TestStoreBestClears(t *testing.T) {
	store := openTestStore(t)

	clears := []Clear{
		{LevelID: "lvl03", Player: "ann", Ticks: 120, ItemsPlaced: 4},
		{LevelID: "lvl03", Player: "bob", Ticks: 200, ItemsPlaced: 3},
		{LevelID: "lvl03", Player: "cy", Ticks: 95, ItemsPlaced: 3},
		{LevelID: "lvl01", Player: "ann", Ticks: 90, ItemsPlaced: 1},
	}
	for _, c := range clears {
		if _, err := store.RecordClear(c); err != nil {
			t.Fatalf("RecordClear(%+v) failed: %v", c, err)
		}
	}

	best, err := store.BestClears("lvl03", 10)
	if err != nil {
		t.Fatalf("BestClears() failed: %v", err)
	}

	want := []string{"cy", "bob", "ann"}
	if len(best) != len(want) {
		t.Fatalf("got %d clears, want %d", len(best), len(want))
	}
	for i, p := range want {
		if best[i].Player != p {
			t.Errorf("best[%d].Player = %q, want %q", i, best[i].Player, p)
		}
	}

	if _, err := store.RecordClear(Clear{Ticks: 1}); err == nil {
		t.Error("RecordClear without level id should fail")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordClear(Clear{LevelID: "lvl02", Ticks: 150, ItemsPlaced: 2})
	store.RecordClear(Clear{LevelID: "lvl02", Ticks: 100, ItemsPlaced: 3})

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}

	st, ok := stats["lvl02"]
	if !ok {
		t.Fatal("lvl02 missing from stats")
	}
	if st.Clears != 2 || st.BestItems != 2 || st.BestTicks != 100 {
		t.Errorf("stats = %+v", st)
	}
	if _, ok := stats["lvl01"]; ok {
		t.Error("uncleared level should not appear")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("lvl01", 10)
	store.RecordClear(Clear{LevelID: "lvl01", Ticks: 90, ItemsPlaced: 1})
	store.SaveScore("lvl02", 20)

	if err := store.ClearScores("lvl01"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("lvl01", 10); len(scores) != 0 {
		t.Errorf("expected no scores, got %d", len(scores))
	}
	if ok, _ := store.IsCleared("lvl01"); ok {
		t.Error("clears should be deleted too")
	}
	if scores, _ := store.TopScores("lvl02", 10); len(scores) != 1 {
		t.Error("other levels should be untouched")
	}
}
