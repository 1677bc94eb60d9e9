package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStoreTestDB(t *testing.T) *Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&Snapshot{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return NewStore(gdb)
}

func TestStoreGetMissingKey(t *testing.T) {
	store := setupStoreTestDB(t)

	if _, ok := store.Get("habittracker:habits"); ok {
		t.Fatal("expected missing key to report false")
	}
}

func TestStoreSetAndOverwrite(t *testing.T) {
	store := setupStoreTestDB(t)

	store.Set("habittracker:habits", `{"habits":[]}`)

	got, ok := store.Get("habittracker:habits")
	if !ok || got != `{"habits":[]}` {
		t.Fatalf("unexpected value: %q ok=%v", got, ok)
	}

	// 同键重写走 upsert 路径。
	store.Set("habittracker:habits", `{"habits":[{"id":"a"}]}`)

	got, ok = store.Get("habittracker:habits")
	if !ok || got != `{"habits":[{"id":"a"}]}` {
		t.Fatalf("overwrite lost: %q ok=%v", got, ok)
	}
}
