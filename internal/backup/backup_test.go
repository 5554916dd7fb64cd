package backup

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/timegrid/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "export.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE exports (id TEXT PRIMARY KEY, caption TEXT)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	for _, id := range []string{"a", "b"} {
		if _, err := db.Exec("INSERT INTO exports (id, caption) VALUES (?, ?)", id, "week "+id); err != nil {
			t.Fatalf("failed to insert test data: %v", err)
		}
	}
	return dbPath
}

func countExports(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM exports").Scan(&n); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return n
}

// ticking returns a clock that advances one second per call.
func ticking() func() time.Time {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written to %s, want under %s", path, mgr.Dir())
	}
	if got := countExports(t, path); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreate_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(context.Background()); err == nil {
		t.Error("Create should fail when the database does not exist")
	}
}

func TestRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = ticking()

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(context.Background()); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted newest first at %d", i)
		}
	}
}

func TestList(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = ticking()

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(context.Background()); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}
	// Files that do not look like backups are ignored
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Path == "" || b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("incomplete backup info: %+v", b)
		}
	}
}

func TestUniqueFilenames(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	fixed := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		path, err := mgr.Create(context.Background())
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		name := filepath.Base(path)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 5 {
		t.Errorf("collision-suffixed backups should be listed, got %d", len(backups))
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = ticking()

	backupPath, err := mgr.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO exports (id, caption) VALUES ('c', 'week c')"); err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	db.Close()

	previous, err := mgr.Restore(ctx, backupPath)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := countExports(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
	if previous == "" {
		t.Fatal("Restore should back up the current database first")
	}
	if got := countExports(t, previous); got != 3 {
		t.Errorf("pre-restore backup should hold 3 rows, got %d", got)
	}
}

func TestRestore_InvalidBackup(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(setupTestDB(t))

	if _, err := mgr.Restore(ctx, filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Restore should fail for a missing backup")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.db")
	if err := os.WriteFile(invalid, []byte("not a database at all, just some bytes"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(ctx, invalid); err == nil {
		t.Error("Restore should fail for a file that is not a database")
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"timegrid-20261016-090001.db", true},
		{"timegrid-20261016-090001-3.db", true},
		{"timegrid-2026.db", false},
		{"other-20261016-090001.db", false},
		{"timegrid-20261016-090001.txt", false},
	}
	for _, tt := range tests {
		if _, ok := parseName(tt.name); ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
